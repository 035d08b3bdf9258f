// Package openenum is the runtime support for generated open enumerations.
//
// An open enumeration preseeds a set of named values but also accepts values it
// has never seen, canonicalizing each distinct value to exactly one instance.
// Code generated by openenumgen keeps one Table per enum type in a package-level
// variable and routes every construction through it.
package openenum

import (
	"sync"
	"sync/atomic"
)

// Table interns entries of type E keyed by values of type V.
// At most one *E is ever handed out per distinct V, so callers can compare
// entries by pointer instead of by value.
//
// The zero value is ready to use. A Table must not be copied after first use.
// Entries are never removed; the table only grows for the life of the process.
//
// Example:
//
//	type statusRef struct{ value string }
//
//	var statusTable openenum.Table[string, statusRef]
//
//	func newStatusRef(v string) *statusRef { return &statusRef{value: v} }
//
//	open := statusTable.Intern("open", newStatusRef)
//	open == statusTable.Intern("open", newStatusRef) // true
type Table[V comparable, E any] struct {
	entries sync.Map // V -> *E

	// nan holds the entry shared by every value that is not equal to
	// itself. Such keys are never found again in a map.
	nan    atomic.Pointer[E]
	nanKey V
	nanMu  sync.Mutex
}

// Intern returns the canonical entry for v, building it with newEntry the
// first time v is seen.
//
// Two goroutines interning the same unseen value at once may both call
// newEntry. Only one candidate is stored; the other is discarded and both
// callers get the stored one.
//
// Values that are not equal to themselves, such as a float NaN, all share
// one entry built from the first of them.
func (t *Table[V, E]) Intern(v V, newEntry func(V) *E) *E {
	if v != v {
		return t.internNaN(v, newEntry)
	}
	if e, ok := t.entries.Load(v); ok {
		return e.(*E)
	}
	e, _ := t.entries.LoadOrStore(v, newEntry(v))
	return e.(*E)
}

func (t *Table[V, E]) internNaN(v V, newEntry func(V) *E) *E {
	if e := t.nan.Load(); e != nil {
		return e
	}
	t.nanMu.Lock()
	defer t.nanMu.Unlock()
	if e := t.nan.Load(); e != nil {
		return e
	}
	e := newEntry(v)
	t.nanKey = v
	t.nan.Store(e)
	return e
}

// Lookup returns the entry for v if one has been interned.
// It never inserts.
func (t *Table[V, E]) Lookup(v V) (*E, bool) {
	if v != v {
		e := t.nan.Load()
		return e, e != nil
	}
	e, ok := t.entries.Load(v)
	if !ok {
		return nil, false
	}
	return e.(*E), true
}

// Len returns the number of interned values.
func (t *Table[V, E]) Len() int {
	n := 0
	if t.nan.Load() != nil {
		n++
	}
	t.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Range calls fn for each interned value and its entry until fn returns false.
// The iteration order is unspecified.
func (t *Table[V, E]) Range(fn func(v V, e *E) bool) {
	if e := t.nan.Load(); e != nil {
		t.nanMu.Lock()
		k := t.nanKey
		t.nanMu.Unlock()
		if !fn(k, e) {
			return
		}
	}
	t.entries.Range(func(k, e any) bool {
		return fn(k.(V), e.(*E))
	})
}
