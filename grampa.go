package grampa

import (
	"sort"
	"strings"
)

// --- Symbols and words ------------------------------------------------------

// Epsilon is the reserved marker symbol for the empty word. It may appear as
// the sole element of a production's righthand side, but is never part of a
// longer word.
const Epsilon Symbol = "ε"

// Symbol is an atomic grammar symbol, terminal or nonterminal. Symbols are
// compared by value; there is no internal structure beyond that.
type Symbol string

func (s Symbol) String() string {
	return string(s)
}

// IsEpsilon returns true for the reserved empty-word marker.
func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

// Word is an ordered, possibly empty sequence of symbols. Sentential forms,
// righthand sides of productions and parser inputs are all words.
type Word []Symbol

// ParseWord splits a whitespace-separated list of symbols into a word.
//
//	ParseWord("i + i * i")  ⟹  [i + i * i]
func ParseWord(s string) Word {
	fields := strings.Fields(s)
	w := make(Word, 0, len(fields))
	for _, f := range fields {
		w = append(w, Symbol(f))
	}
	return w
}

// IsEpsilon returns true iff w is the single-symbol word (ε).
func (w Word) IsEpsilon() bool {
	return len(w) == 1 && w[0].IsEpsilon()
}

// Equal compares two words symbol by symbol.
func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i, sym := range w {
		if sym != other[i] {
			return false
		}
	}
	return true
}

// HasSuffix returns true iff other is a suffix of w.
func (w Word) HasSuffix(other Word) bool {
	if len(other) > len(w) {
		return false
	}
	return w[len(w)-len(other):].Equal(other)
}

// Suffixes returns all suffixes of w, longest first, ending with the empty
// word.
//
//	ParseWord("a b").Suffixes()  ⟹  [[a b] [b] []]
func (w Word) Suffixes() []Word {
	suffixes := make([]Word, 0, len(w)+1)
	for i := 0; i <= len(w); i++ {
		suffixes = append(suffixes, w[i:])
	}
	return suffixes
}

// Contains returns true iff sym occurs in w.
func (w Word) Contains(sym Symbol) bool {
	for _, s := range w {
		if s == sym {
			return true
		}
	}
	return false
}

func (w Word) String() string {
	var b strings.Builder
	for i, sym := range w {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(sym))
	}
	return b.String()
}

// SortSymbols sorts a slice of symbols in place and returns it. Deterministic
// ordering of symbol enumerations is relied upon by tests and by the display
// layer.
func SortSymbols(syms []Symbol) []Symbol {
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
