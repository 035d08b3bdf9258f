package synth

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EmptyConstantName replaces constant names that would otherwise be empty,
// e.g. for the empty string literal.
const EmptyConstantName = "__EMPTY__"

// MakeUnique returns name, or name with underscores appended, such that the
// result matches none of existing case-insensitively.
//
// Each existing name can block at most one candidate, so at most
// len(existing)+1 candidates are tried.
func MakeUnique(name string, existing []string) string {
	for range len(existing) + 1 {
		if !containsFold(existing, name) {
			return name
		}
		name += "_"
	}
	return name
}

// makeUniqueIdents is MakeUnique for a name that declares several
// identifiers: it appends underscores to name until none of idents(name)
// matches existing case-insensitively.
//
// The candidates differ only in their number of trailing underscores, so each
// existing name blocks at most one candidate per derived identifier.
func makeUniqueIdents(name string, existing []string, idents func(string) []string) string {
	for range len(idents(name))*len(existing) + 1 {
		if !slices.ContainsFunc(idents(name), func(id string) bool { return containsFold(existing, id) }) {
			return name
		}
		name += "_"
	}
	return name
}

// TypeIdents returns the package-level identifiers a type named name
// declares besides its constants: the type, its ref struct, constructor,
// table, factory and values accessor.
func TypeIdents(name string) []string {
	lower := lowerFirst(name)
	return []string{name, lower + "Ref", "new" + name + "Ref", lower + "Table", name + "Of", name + "Values"}
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// unicodeCategories assigns each rune a general category. Runes in
// consecutive equal categories stay in the same group.
var unicodeCategories = []*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo,
	unicode.Mn, unicode.Mc, unicode.Me,
	unicode.Nd, unicode.Nl, unicode.No,
	unicode.Zs, unicode.Zl, unicode.Zp,
	unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs,
	unicode.Pc, unicode.Pd, unicode.Ps, unicode.Pe, unicode.Pi, unicode.Pf, unicode.Po,
	unicode.Sm, unicode.Sc, unicode.Sk, unicode.So,
}

const (
	categoryUpper = 0
	categoryLower = 1
)

func category(r rune) int {
	for i, t := range unicodeCategories {
		if unicode.Is(t, r) {
			return i
		}
	}
	return -1
}

// SplitByCharacterType splits s into groups of runes of the same Unicode
// general category. An upper-case run followed by lower-case letters gives
// up its last letter to the lower-case group, so "HTTPServer" splits into
// "HTTP" and "Server" and "fooBar" into "foo" and "Bar".
func SplitByCharacterType(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	var groups []string
	start := 0
	current := category(runes[0])
	for pos := 1; pos < len(runes); pos++ {
		cat := category(runes[pos])
		if cat == current {
			continue
		}
		if cat == categoryLower && current == categoryUpper {
			if newStart := pos - 1; newStart != start {
				groups = append(groups, string(runes[start:newStart]))
				start = newStart
			}
		} else {
			groups = append(groups, string(runes[start:pos]))
			start = pos
		}
		current = cat
	}
	return append(groups, string(runes[start:]))
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}

// ConstantNamer derives constant identifiers from literals.
type ConstantNamer struct {
	Names NameHelper
}

// Name returns the constant name for a literal with the given textual form.
// A non-blank custom name is returned verbatim. Otherwise the text is split
// by character type, groups that are nothing but illegal characters are
// dropped, and the rest are joined with underscores and upper-cased.
// Uniqueness is the caller's concern.
func (n ConstantNamer) Name(raw, customName string) string {
	if strings.TrimSpace(customName) != "" {
		return customName
	}

	var kept []string
	for _, group := range SplitByCharacterType(raw) {
		legal := n.Names.ReplaceIllegalCharacters(group)
		if strings.Trim(legal, "_") == "" {
			continue
		}
		kept = append(kept, legal)
	}
	name := strings.ToUpper(strings.Join(kept, "_"))

	switch {
	case name == "":
		return EmptyConstantName
	case startsWithDigit(name):
		return "_" + name
	}
	return name
}
