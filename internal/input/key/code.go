package key

import (
	"strings"
	"unicode"
)

// Code identifies the physical key, independent of layout and Shift state.
// Values follow the W3C UI Events code names ("KeyC", "Quote", "Digit1").
type Code string

// Codes used by built-in shortcuts.
const (
	CodeNone      Code = ""
	CodeA         Code = "KeyA"
	CodeC         Code = "KeyC"
	CodeG         Code = "KeyG"
	CodeR         Code = "KeyR"
	CodeV         Code = "KeyV"
	CodeX         Code = "KeyX"
	CodeZ         Code = "KeyZ"
	CodeQuote     Code = "Quote"
	CodeSlash     Code = "Slash"
	CodeComma     Code = "Comma"
	CodePeriod    Code = "Period"
	CodeSemicolon Code = "Semicolon"
	CodeMinus     Code = "Minus"
	CodeEqual     Code = "Equal"
	CodeBackquote Code = "Backquote"
	CodeSpace     Code = "Space"
)

// punctuationCodes maps unshifted and shifted US-layout punctuation to codes.
var punctuationCodes = map[rune]Code{
	'\'': CodeQuote, '"': CodeQuote,
	'/': CodeSlash, '?': CodeSlash,
	',': CodeComma, '<': CodeComma,
	'.': CodePeriod, '>': CodePeriod,
	';': CodeSemicolon, ':': CodeSemicolon,
	'-': CodeMinus, '_': CodeMinus,
	'=': CodeEqual, '+': CodeEqual,
	'`': CodeBackquote, '~': CodeBackquote,
	' ': CodeSpace,
	'[': "BracketLeft", '{': "BracketLeft",
	']': "BracketRight", '}': "BracketRight",
	'\\': "Backslash", '|': "Backslash",
}

// digitShifted maps shifted US-layout digits back to their digit.
var digitShifted = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
}

// codeRunes maps punctuation codes to their unshifted and shifted characters.
var codeRunes = map[Code][2]rune{
	CodeQuote:      {'\'', '"'},
	CodeSlash:      {'/', '?'},
	CodeComma:      {',', '<'},
	CodePeriod:     {'.', '>'},
	CodeSemicolon:  {';', ':'},
	CodeMinus:      {'-', '_'},
	CodeEqual:      {'=', '+'},
	CodeBackquote:  {'`', '~'},
	CodeSpace:      {' ', ' '},
	"BracketLeft":  {'[', '{'},
	"BracketRight": {']', '}'},
	"Backslash":    {'\\', '|'},
}

// Rune returns the character the code produces on a US layout, or 0.
func (c Code) Rune(shift bool) rune {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "Key") && len(s) == 4:
		r := rune(s[3])
		if shift {
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	case strings.HasPrefix(s, "Digit") && len(s) == 6:
		r := rune(s[5])
		if shift {
			for shifted, d := range digitShifted {
				if d == r {
					return shifted
				}
			}
		}
		return r
	}
	if pair, ok := codeRunes[c]; ok {
		if shift {
			return pair[1]
		}
		return pair[0]
	}
	return 0
}

// CodeFromRune derives the physical code for a character on a US layout.
// Terminals only report characters, so this is how codes are recovered.
func CodeFromRune(r rune) Code {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return Code("Key" + string(unicode.ToUpper(r)))
	case r >= '0' && r <= '9':
		return Code("Digit" + string(r))
	}
	if d, ok := digitShifted[r]; ok {
		return Code("Digit" + string(d))
	}
	return punctuationCodes[r]
}

// CodeFromName parses a code name such as "KeyC", "c", "Quote" or "'".
func CodeFromName(name string) Code {
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) == 1 {
		return CodeFromRune(runes[0])
	}
	for _, c := range punctuationCodes {
		if strings.EqualFold(string(c), name) {
			return c
		}
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "key") && len(name) == 4 {
		return CodeFromRune(rune(name[3]))
	}
	if strings.HasPrefix(lower, "digit") && len(name) == 6 {
		return CodeFromRune(rune(name[5]))
	}
	return CodeNone
}
