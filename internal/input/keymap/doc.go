// Package keymap lets users rebind action shortcuts.
//
// A Keymap is an ordered list of bindings from shortcut specs to action
// names. Applying a keymap to a set of actions replaces the key test of
// every bound action with an exact chord match; actions it does not
// mention keep their built-in shortcut.
//
// # Sources
//
// Keymaps come from the [keys] section of the configuration file
//
//	[keys]
//	gridMode = "CtrlOrCmd+G"
//	zenMode  = ""            # remove the shortcut
//
// or from keymap files loaded with a Loader:
//
//	name = "custom"
//
//	[[bindings]]
//	keys   = "Alt+Z"
//	action = "zenMode"
//
// # Conflicts
//
// Two actions accepting the same key event cancel each other at dispatch
// time. Conflicts and ConflictsWith find such clashes up front so the
// shell can report them at startup.
package keymap
