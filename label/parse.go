package label

import "strings"

// Parse parses a label string into a Target.
//
// The specific form is scanned once from the end so that the target name,
// explicit after the rightmost ':' or implicit as the last directory, is
// known without lookahead. Labels ending in "..." are recursive.
func Parse(s string) (Target, error) {
	if s == "" {
		return Target{}, parseErr(s, ErrTooShort, -1)
	}
	if last := s[len(s)-1]; last == ':' || last == '/' {
		return Target{}, parseErr(s, ErrMissingTargetName, len(s)-1)
	}
	if strings.HasSuffix(s, RecursiveName) {
		return parseRecursive(s)
	}
	return parseSpecific(s)
}

// MustParse parses a label or panics. Use only for constants/tests.
func MustParse(s string) Target {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func isPartChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '-'
}

func parseSpecific(s string) (Target, error) {
	nameStart := 0
	dirEnd := len(s)
	splitFixed := false
	seenSlash := false
	// prevSep is true when the character to the right was '/' or ':', so a
	// '/' here would close an empty directory segment.
	prevSep := false

	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		switch {
		case isPartChar(c):
		case c == ':':
			if splitFixed || seenSlash {
				return Target{}, parseErr(s, ErrIllegalCharacter, i)
			}
			nameStart = i + 1
			dirEnd = i
			splitFixed = true
		case c == '/':
			if prevSep {
				return Target{}, parseErr(s, ErrDirectoriesMustHaveAName, i)
			}
			if i == 0 {
				return Target{}, parseErr(s, ErrCannotStartWithASlash, i)
			}
			if !splitFixed {
				nameStart = i + 1
				splitFixed = true
			}
			seenSlash = true
		default:
			return Target{}, parseErr(s, ErrIllegalCharacter, i)
		}
		prevSep = c == '/' || c == ':'
	}

	return Target{
		raw:         s,
		directories: splitDirs(s[:dirEnd]),
		name:        s[nameStart:],
	}, nil
}

func parseRecursive(s string) (Target, error) {
	if s == RecursiveName {
		return Target{raw: s, recursive: true}, nil
	}
	if !strings.HasSuffix(s, ":"+RecursiveName) {
		return Target{}, parseErr(s, ErrColonMustPrecedeRecursiveTarget, len(s)-len(RecursiveName))
	}

	dirs := s[:len(s)-len(RecursiveName)-1]
	if strings.HasPrefix(dirs, "/") {
		return Target{}, parseErr(s, ErrCannotStartWithASlash, 0)
	}
	if strings.HasSuffix(dirs, "/") {
		return Target{}, parseErr(s, ErrDirectoriesMustHaveAName, len(dirs)-1)
	}
	prevSlash := false
	for i := 0; i < len(dirs); i++ {
		c := dirs[i]
		if c == '/' {
			if prevSlash {
				return Target{}, parseErr(s, ErrDirectoriesMustHaveAName, i)
			}
		} else if !isPartChar(c) {
			return Target{}, parseErr(s, ErrIllegalCharacter, i)
		}
		prevSlash = c == '/'
	}

	return Target{
		raw:         s,
		directories: splitDirs(dirs),
		recursive:   true,
	}, nil
}

func splitDirs(dirs string) []string {
	if dirs == "" {
		return nil
	}
	return strings.Split(dirs, "/")
}
