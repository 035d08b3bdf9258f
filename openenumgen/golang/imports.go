package golang

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

// importSet assigns local names to the imports of one generated file.
type importSet struct {
	byPath map[string]string // import path -> local name
	taken  map[string]bool   // local names in use
}

func newImportSet(reserved ...string) *importSet {
	s := &importSet{byPath: make(map[string]string), taken: make(map[string]bool)}
	for _, name := range reserved {
		s.taken[name] = true
	}
	return s
}

// add imports pkgPath, whose package clause declares name, and returns the
// local name to qualify identifiers with. Clashing names get a numeric suffix.
func (s *importSet) add(pkgPath, name string) string {
	if local, ok := s.byPath[pkgPath]; ok {
		return local
	}
	if name == "" {
		name = defaultPackageName(pkgPath)
	}
	local := name
	for i := 2; s.taken[local]; i++ {
		local = name + strconv.Itoa(i)
	}
	s.byPath[pkgPath] = local
	s.taken[local] = true
	return local
}

func (s *importSet) empty() bool {
	return len(s.byPath) == 0
}

// write emits the import declaration. Standard library packages come first.
func (s *importSet) write(buf *bytes.Buffer) {
	if s.empty() {
		return
	}
	var std, other []string
	for p := range s.byPath {
		if isStdlib(p) {
			std = append(std, p)
		} else {
			other = append(other, p)
		}
	}
	sort.Strings(std)
	sort.Strings(other)

	buf.WriteString("import (\n")
	for i, group := range [][]string{std, other} {
		if i > 0 && len(std) > 0 && len(other) > 0 {
			buf.WriteString("\n")
		}
		for _, p := range group {
			buf.WriteString("\t")
			if local := s.byPath[p]; local != defaultPackageName(p) {
				buf.WriteString(local + " ")
			}
			fmt.Fprintf(buf, "%q\n", p)
		}
	}
	buf.WriteString(")\n\n")
}

// defaultPackageName guesses the package name of an import path from its
// last element, dropping a major version suffix such as "/v2" or ".v3".
func defaultPackageName(pkgPath string) string {
	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(pkgPath))
	}
	if i := strings.Index(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// isStdlib reports whether an import path belongs to the standard library,
// whose paths have no dot in their first element.
func isStdlib(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}
