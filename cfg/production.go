package cfg

import (
	"fmt"

	"github.com/npillmayer/grampa"
)

// Production is a grammar production: a lefthand side and a righthand word.
// For context-free productions the lefthand side is a single nonterminal;
// monotonic (type-0/type-1) productions may carry a multi-symbol lefthand
// word. Productions are value-comparable: two productions with equal sides
// are the same production.
type Production struct {
	Lhs grampa.Word
	Rhs grampa.Word
}

// NewProduction creates a production and checks its local well-formedness:
// both sides must be non-empty, ε may not appear in the lefthand side, and
// ε may only appear as the sole righthand symbol. Membership of the sides
// in a grammar's symbol sets is checked by the grammar constructor.
func NewProduction(lhs grampa.Word, rhs grampa.Word) (Production, error) {
	if len(lhs) == 0 {
		return Production{}, fmt.Errorf("production has an empty lefthand side")
	}
	for _, sym := range lhs {
		if sym == "" {
			return Production{}, fmt.Errorf("production %q contains an empty lefthand symbol", lhs)
		}
		if sym.IsEpsilon() {
			return Production{}, fmt.Errorf("production %q contains ε in its lefthand side", lhs)
		}
	}
	if len(rhs) == 0 {
		return Production{}, fmt.Errorf("production %q has an empty righthand side, use ε instead", lhs)
	}
	for _, sym := range rhs {
		if sym == "" {
			return Production{}, fmt.Errorf("production %q contains an empty righthand symbol", lhs)
		}
		if sym.IsEpsilon() && len(rhs) != 1 {
			return Production{}, fmt.Errorf("righthand side of %q contains ε but has more than one symbol", lhs)
		}
	}
	return Production{
		Lhs: append(grampa.Word{}, lhs...),
		Rhs: append(grampa.Word{}, rhs...),
	}, nil
}

// prod is a shorthand constructor for productions the transformation
// pipelines assemble from already-validated parts.
func prod(lhs grampa.Symbol, rhs grampa.Word) Production {
	return Production{Lhs: grampa.Word{lhs}, Rhs: rhs}
}

// IsContextFree returns true iff the lefthand side is a single symbol.
func (p Production) IsContextFree() bool {
	return len(p.Lhs) == 1
}

// Equal compares two productions by value.
func (p Production) Equal(other Production) bool {
	return p.Lhs.Equal(other.Lhs) && p.Rhs.Equal(other.Rhs)
}

func (p Production) String() string {
	return fmt.Sprintf("%s -> %s", p.Lhs, p.Rhs)
}

// key is the map key used for duplicate detection and index lookup.
// The arrow cannot occur inside a symbol, so the key is unambiguous.
func (p Production) key() string {
	return p.String()
}

// isEpsilon returns true for ε-productions.
func (p Production) isEpsilon() bool {
	return p.Rhs.IsEpsilon()
}

// --- Production filters -----------------------------------------------------

// Filter selects productions by shape. Every set field must match; unset
// fields match anything. The zero values used as "unset" markers (nil words,
// length 0) cannot occur in a well-formed production, so there is no
// ambiguity. Filters combine their conditions by logical AND.
type Filter struct {
	Lhs           grampa.Word // exact lefthand side
	Rhs           grampa.Word // exact righthand side
	RhsLen        int         // exact righthand length
	RhsIsSuffixOf grampa.Word // righthand side is a suffix of this word
}

// Matches applies the filter to a production.
func (f Filter) Matches(p Production) bool {
	if f.Lhs != nil && !p.Lhs.Equal(f.Lhs) {
		return false
	}
	if f.Rhs != nil && !p.Rhs.Equal(f.Rhs) {
		return false
	}
	if f.RhsLen != 0 && len(p.Rhs) != f.RhsLen {
		return false
	}
	if f.RhsIsSuffixOf != nil && !f.RhsIsSuffixOf.HasSuffix(p.Rhs) {
		return false
	}
	return true
}
