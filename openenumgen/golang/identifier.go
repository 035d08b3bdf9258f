package golang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Go keywords. Predeclared identifiers are not reserved and may be shadowed.
var reservedWords = map[string]bool{
	"break":       true,
	"case":        true,
	"chan":        true,
	"const":       true,
	"continue":    true,
	"default":     true,
	"defer":       true,
	"else":        true,
	"fallthrough": true,
	"for":         true,
	"func":        true,
	"go":          true,
	"goto":        true,
	"if":          true,
	"import":      true,
	"interface":   true,
	"map":         true,
	"package":     true,
	"range":       true,
	"return":      true,
	"select":      true,
	"struct":      true,
	"switch":      true,
	"type":        true,
	"var":         true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// DefaultWordDelimiters separate words in definition names.
const DefaultWordDelimiters = "-_ "

// NameHelper legalizes and normalizes Go identifiers.
type NameHelper struct {
	// WordDelimiters are removed by NormalizeName, capitalizing the word
	// that follows. Defaults to DefaultWordDelimiters.
	WordDelimiters string
}

func (h NameHelper) delimiters() string {
	if h.WordDelimiters == "" {
		return DefaultWordDelimiters
	}
	return h.WordDelimiters
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ReplaceIllegalCharacters replaces runes that cannot appear in a Go
// identifier with underscores.
func (NameHelper) ReplaceIllegalCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		if isIdentRune(r) {
			return r
		}
		return '_'
	}, s)
}

// Capitalize upper-cases the first letter of every whitespace-separated word.
func (NameHelper) Capitalize(s string) string {
	return capitalizeWords(s, " \t\n\r", false)
}

// NormalizeName turns a legal name into a type name. Words separated by
// delimiters are capitalized and joined; a name made only of upper-case
// words is title-cased first ("TICKET_STATUS" becomes "TicketStatus").
// A leading digit is prefixed with an underscore and keywords are escaped.
func (h NameHelper) NormalizeName(s string) string {
	if s == "" {
		return s
	}
	delims := h.delimiters()
	allUpper := allWordsUpper(s, delims)
	if strings.ContainsAny(s, delims) {
		capitalized := capitalizeWords(s, delims, allUpper)
		// Only trailing words change case; the first rune is kept as is.
		first, _ := utf8.DecodeRuneInString(s)
		_, capSize := utf8.DecodeRuneInString(capitalized)
		s = string(first) + capitalized[capSize:]
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(delims, r) {
				return -1
			}
			return r
		}, s)
	} else if allUpper {
		s = capitalizeWords(s, delims, true)
	}
	if s == "" {
		return s
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(r) {
		s = "_" + s
	}
	return escapeReservedWord(s)
}

// capitalizeWords upper-cases the first rune after each delimiter and at the
// start of s. With fully set, every other rune is lower-cased.
func capitalizeWords(s, delims string, fully bool) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		switch {
		case strings.ContainsRune(delims, r):
			start = true
		case start:
			r = unicode.ToTitle(r)
			start = false
		case fully:
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// allWordsUpper reports whether every rune of s is upper case or a delimiter.
func allWordsUpper(s, delims string) bool {
	for _, r := range s {
		if !strings.ContainsRune(delims, r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// snakeCase converts a type name to a lower-case file name stem:
// "TicketStatus" becomes "ticket_status" and "HTTPMethod" "http_method".
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
