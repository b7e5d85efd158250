package fixpoint

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Set is a plain map-backed set, generic over its element type.
// The zero value is not usable; create sets with New.
type Set[E comparable] map[E]struct{}

// New creates a set from the given elements.
func New[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Add inserts an element and returns the set.
func (s Set[E]) Add(e E) Set[E] {
	s[e] = struct{}{}
	return s
}

// Contains tests for membership.
func (s Set[E]) Contains(e E) bool {
	_, ok := s[e]
	return ok
}

// Union inserts all elements of other and returns the set.
func (s Set[E]) Union(other Set[E]) Set[E] {
	for e := range other {
		s[e] = struct{}{}
	}
	return s
}

// Copy returns an independent copy of the set.
func (s Set[E]) Copy() Set[E] {
	return Set[E](maps.Clone(map[E]struct{}(s)))
}

// Equal tests two sets for equal contents.
func (s Set[E]) Equal(other Set[E]) bool {
	if len(s) != len(other) {
		return false
	}
	for e := range s {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Size returns the number of elements.
func (s Set[E]) Size() int {
	return len(s)
}

// Values returns the elements in unspecified order.
func (s Set[E]) Values() []E {
	return maps.Keys(map[E]struct{}(s))
}

// Sorted returns the elements of a set over an ordered element type in
// ascending order. Use this wherever deterministic output is required.
func Sorted[E constraints.Ordered](s Set[E]) []E {
	vals := s.Values()
	slices.Sort(vals)
	return vals
}

// ExpandFunc is a monotone set expansion: it must return a superset of its
// argument (returning the argument unchanged signals the fixed point).
// Extra read-only context is captured by the function's closure.
type ExpandFunc[E comparable] func(Set[E]) Set[E]

// Closure iterates f starting from initial until a fixed point is reached
// and returns it. The result is deterministic for any monotone f: it is the
// least fixed point containing initial, independent of iteration order.
// Termination is guaranteed as long as f is monotone and its universe of
// possible elements is finite; both are the caller's contract.
func Closure[E comparable](f ExpandFunc[E], initial Set[E]) Set[E] {
	current := initial.Copy()
	for {
		next := f(current.Copy())
		if next.Equal(current) {
			return current
		}
		current = next
	}
}
