package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is a modifier combination plus one physical key.
// Chords match on the physical code so they are layout independent.
type Chord struct {
	Modifiers Modifier
	Key       Key  // set for special keys
	Code      Code // set for character keys
}

// ParseChord parses a shortcut such as "CtrlOrCmd+Quote", "Alt+Shift+C"
// or "Delete". Modifier names are case-insensitive; "CtrlOrCmd" resolves
// to the platform command modifier at parse time.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	keyPart := spec
	var mods Modifier
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		spec = strings.TrimSuffix(spec, "++")
	} else if i := strings.LastIndex(spec, "+"); i >= 0 {
		keyPart = spec[i+1:]
		spec = spec[:i]
	} else {
		spec = ""
	}

	if spec != "" {
		for _, p := range strings.Split(spec, "+") {
			mod := ModifierFromName(p)
			if mod == ModNone {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
			}
			mods = mods.With(mod)
		}
	}

	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return Chord{Modifiers: mods, Key: k}, nil
	}
	if c := CodeFromName(keyPart); c != CodeNone {
		return Chord{Modifiers: mods, Key: KeyRune, Code: c}, nil
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParseChord parses a chord and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// Matches reports whether the event is exactly this chord.
// Extra modifiers on the event prevent a match.
func (c Chord) Matches(e Event) bool {
	if e.Modifiers != c.Modifiers {
		return false
	}
	if c.Key != KeyRune {
		return e.Key == c.Key
	}
	return e.Code == c.Code
}

// Event returns a key event that the chord matches.
func (c Chord) Event() Event {
	if c.Key != KeyRune {
		return NewSpecialEvent(c.Key, c.Modifiers)
	}
	e := NewRuneEvent(c.Code.Rune(c.Modifiers.HasShift()), c.Modifiers)
	e.Code = c.Code
	return e
}

// IsZero reports whether the chord is unset.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// String formats the chord in the form accepted by ParseChord.
func (c Chord) String() string {
	name := c.Key.String()
	if c.Key == KeyRune {
		name = string(c.Code)
	}
	if mods := c.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
