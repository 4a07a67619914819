// Package key provides key event types and shortcut parsing.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: the logical key (special keys, or KeyRune for characters)
//   - Code: the physical key, as W3C UI Events code names
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press, which handlers may mark as consumed
//   - Chord: a parsed shortcut that matches events exactly
//
// # Shortcut Specifications
//
// Chords are written as modifiers joined with "+" followed by one key:
//
//   - "Delete", "Escape", "F5"
//   - "CtrlOrCmd+Quote", "Alt+R", "Alt+Shift+C"
//
// CtrlOrCmd resolves to Cmd on macOS and Ctrl elsewhere.
package key
