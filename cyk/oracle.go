package cyk

import (
	"fmt"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg"
	"github.com/npillmayer/grampa/cfg/fixpoint"
)

// Oracle answers derivability questions about an input word in terms of the
// original, pre-CNF grammar, backed by the CYK table of the grammar's CNF
// transform. The CNF transform keeps the original nonterminals and their
// names, so a table cell entry for an original nonterminal certifies
// derivability of the corresponding substring in the original grammar; the
// oracle adds the zero-length case, which CNF cannot express, from the
// nullable symbols of the original grammar.
//
// Nullability is taken as the transitive closure (symbols deriving ε
// through chains of nullable symbols), a superset of the symbols with a
// literal ε-production; anything less would make Derives inconsistent with
// its own recursion.
type Oracle struct {
	g        *cfg.Grammar
	table    *Table
	input    grampa.Word
	nullable fixpoint.Set[grampa.Symbol]
}

// NewOracle converts the grammar to CNF, parses the input with it and wraps
// the resulting table. The CNF transform is deliberately left uncleaned:
// the rules of eliminated ε-bearing nonterminals must stay in place for
// their table entries to exist.
func NewOracle(g *cfg.Grammar, input grampa.Word) (*Oracle, error) {
	if !g.IsContextFree() {
		return nil, fmt.Errorf("the derivability oracle requires a context-free grammar")
	}
	table, err := Parse(g.ToCNF(), input)
	if err != nil {
		return nil, err
	}
	return &Oracle{
		g:        g,
		table:    table,
		input:    input,
		nullable: cfg.NullableSymbols(g),
	}, nil
}

// Table exposes the underlying CYK table of the CNF transform.
func (o *Oracle) Table() *Table {
	return o.table
}

// Recognizes reports whether the input is in the grammar's language.
func (o *Oracle) Recognizes() bool {
	if len(o.input) == 0 {
		return o.nullable.Contains(o.g.Start())
	}
	return o.table.Recognizes(o.g.Start())
}

// Derives tests whether the word w derives the input substring of length l
// starting at (1-based) position i. On success it returns the lengths
// consumed by each symbol of w, in order, summing to l; nil means w does
// not derive the substring. Nonterminals may consume length zero when they
// are nullable; a literal ε in w always consumes length zero. The search
// tries smaller lengths first and backtracks, so the result is
// deterministic.
func (o *Oracle) Derives(w grampa.Word, i, l int) []int {
	if len(w) == 0 {
		if l == 0 {
			return []int{}
		}
		return nil
	}
	sym := w[0]
	if sym.IsEpsilon() {
		if rest := o.Derives(w[1:], i, l); rest != nil {
			return append([]int{0}, rest...)
		}
		return nil
	}
	if !o.g.IsNonterminal(sym) {
		if l >= 1 && i >= 1 && i <= len(o.input) && o.input[i-1] == sym {
			if rest := o.Derives(w[1:], i+1, l-1); rest != nil {
				return append([]int{1}, rest...)
			}
		}
		return nil
	}
	for k := 0; k <= l; k++ {
		if !o.spans(sym, i, k) {
			continue
		}
		if rest := o.Derives(w[1:], i+k, l-k); rest != nil {
			return append([]int{k}, rest...)
		}
	}
	return nil
}

// OriginalLeftmostProds reconstructs a leftmost derivation of the full
// input in the original grammar, as production indices into it, suitable
// for Derivation.Leftmost. Tie-breaking follows LeftmostProds: lowest
// production index first, then the split found first by Derives.
func (o *Oracle) OriginalLeftmostProds() ([]int, error) {
	if !o.Recognizes() {
		return nil, fmt.Errorf("input %v is not in the grammar's language", o.input)
	}
	seq := o.prodsFor(o.g.Start(), 1, len(o.input), fixpoint.New[spanOf]())
	if seq == nil {
		return nil, fmt.Errorf("cannot reconstruct a derivation for %v", o.input)
	}
	return seq, nil
}

type spanOf struct {
	sym  grampa.Symbol
	i, l int
}

// prodsFor emits the production rebuilding A over span (i, l), followed by
// the sub-derivations of its righthand nonterminals left to right. The
// active set guards against unit- and ε-cycles re-entering the same span.
func (o *Oracle) prodsFor(A grampa.Symbol, i, l int, active fixpoint.Set[spanOf]) []int {
	here := spanOf{sym: A, i: i, l: l}
	if active.Contains(here) {
		return nil
	}
	active.Add(here)
	defer delete(active, here)
	for idx, p := range o.g.Prods() {
		if p.Lhs[0] != A {
			continue
		}
		if p.Rhs.IsEpsilon() {
			if l == 0 {
				return []int{idx}
			}
			continue
		}
		lens := o.Derives(p.Rhs, i, l)
		if lens == nil {
			continue
		}
		seq := []int{idx}
		pos := i
		ok := true
		for j, sym := range p.Rhs {
			if o.g.IsNonterminal(sym) {
				sub := o.prodsFor(sym, pos, lens[j], active)
				if sub == nil {
					ok = false
					break
				}
				seq = append(seq, sub...)
			}
			pos += lens[j]
		}
		if ok {
			return seq
		}
	}
	return nil
}

// spans tests whether nonterminal A derives the substring of length k at
// position i; length zero reduces to nullability.
func (o *Oracle) spans(A grampa.Symbol, i, k int) bool {
	if k == 0 {
		return o.nullable.Contains(A)
	}
	return o.table.At(i, k).Contains(A)
}
