package cyk

import (
	"fmt"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg"
	"github.com/npillmayer/grampa/cfg/fixpoint"
)

// Table is a CYK recognition table. Cell (i, l) holds the nonterminals
// deriving the input substring of length l starting at position i; both
// coordinates are 1-based, following the usual presentation of the
// algorithm. Cells are stored sparsely, absent cells are empty.
type Table struct {
	n     int
	cells map[span]fixpoint.Set[grampa.Symbol]
}

type span struct {
	i, l int
}

// InputLength returns the length of the input word the table was built for.
func (t *Table) InputLength() int {
	return t.n
}

// At returns the symbol set of cell (i, l). The result may be nil for an
// empty cell; membership tests on a nil set are valid and report false.
func (t *Table) At(i, l int) fixpoint.Set[grampa.Symbol] {
	return t.cells[span{i, l}]
}

// Span returns the symbols of cell (i, l) in sorted order.
func (t *Table) Span(i, l int) []grampa.Symbol {
	return fixpoint.Sorted(t.At(i, l))
}

// Recognizes reports whether the given symbol derives the complete input.
func (t *Table) Recognizes(S grampa.Symbol) bool {
	return t.At(1, t.n).Contains(S)
}

func (t *Table) mark(i, l int, sym grampa.Symbol) {
	cell, ok := t.cells[span{i, l}]
	if !ok {
		cell = fixpoint.New[grampa.Symbol]()
		t.cells[span{i, l}] = cell
	}
	cell.Add(sym)
}

// Parse runs the CYK algorithm for a grammar in Chomsky Normal Form over an
// input word and returns the filled recognition table. An input that is not
// in the grammar's language still yields a table (use Recognizes); only a
// grammar unfit for the algorithm is an error.
//
// The grammar check accepts the residue EliminateEpsilonRules leaves
// behind: ε-productions of nonterminals that no longer occur in any
// righthand side are tolerated and do not take part in recognition. This is
// what makes the table usable for reconstructing derivations of the pre-CNF
// grammar, see Oracle.
func Parse(g *cfg.Grammar, input grampa.Word) (*Table, error) {
	if err := checkCNF(g); err != nil {
		return nil, err
	}
	n := len(input)
	table := &Table{n: n, cells: make(map[span]fixpoint.Set[grampa.Symbol])}
	for i := 1; i <= n; i++ {
		for _, p := range g.Prods() {
			if len(p.Rhs) == 1 && p.Rhs[0] == input[i-1] {
				table.mark(i, 1, p.Lhs[0])
			}
		}
	}
	for l := 2; l <= n; l++ {
		for i := 1; i+l-1 <= n; i++ {
			for k := 1; k < l; k++ {
				for _, p := range g.Prods() {
					if len(p.Rhs) != 2 {
						continue
					}
					if table.At(i, k).Contains(p.Rhs[0]) && table.At(i+k, l-k).Contains(p.Rhs[1]) {
						table.mark(i, l, p.Lhs[0])
					}
				}
			}
		}
	}
	tracer().Debugf("CYK table for |input| = %d filled, S ∈ R(1,%d): %v",
		n, n, table.Recognizes(g.Start()))
	return table, nil
}

// LeftmostProds reconstructs a leftmost derivation of the input from a
// filled table, as a sequence of production indices suitable for
// Derivation.Leftmost. The reconstruction is deterministic: for an
// ambiguous input it picks, at every node, the production with the lowest
// index and, among its splits, the smallest left span.
func LeftmostProds(g *cfg.Grammar, t *Table, input grampa.Word) ([]int, error) {
	if !t.Recognizes(g.Start()) {
		return nil, fmt.Errorf("input %v is not in the grammar's language", input)
	}
	return leftmost(g, t, input, g.Start(), 1, len(input)), nil
}

func leftmost(g *cfg.Grammar, t *Table, input grampa.Word, A grampa.Symbol, i, l int) []int {
	for idx, p := range g.Prods() {
		if p.Lhs[0] != A {
			continue
		}
		if l == 1 && len(p.Rhs) == 1 && p.Rhs[0] == input[i-1] {
			return []int{idx}
		}
		if l < 2 || len(p.Rhs) != 2 {
			continue
		}
		for k := 1; k < l; k++ {
			if t.At(i, k).Contains(p.Rhs[0]) && t.At(i+k, l-k).Contains(p.Rhs[1]) {
				seq := []int{idx}
				seq = append(seq, leftmost(g, t, input, p.Rhs[0], i, k)...)
				return append(seq, leftmost(g, t, input, p.Rhs[1], i+k, l-k)...)
			}
		}
	}
	return nil // table and grammar consistent ⟹ unreachable
}

// AllLeftmostProds reconstructs every leftmost derivation of the input, in
// the deterministic order induced by production index and split point. An
// unambiguous input yields exactly one sequence. The number of derivations
// can grow exponentially with the input length for highly ambiguous
// grammars.
func AllLeftmostProds(g *cfg.Grammar, t *Table, input grampa.Word) ([][]int, error) {
	if !t.Recognizes(g.Start()) {
		return nil, fmt.Errorf("input %v is not in the grammar's language", input)
	}
	return allLeftmost(g, t, input, g.Start(), 1, len(input)), nil
}

func allLeftmost(g *cfg.Grammar, t *Table, input grampa.Word, A grampa.Symbol, i, l int) [][]int {
	var out [][]int
	for idx, p := range g.Prods() {
		if p.Lhs[0] != A {
			continue
		}
		if l == 1 && len(p.Rhs) == 1 && p.Rhs[0] == input[i-1] {
			out = append(out, []int{idx})
			continue
		}
		if l < 2 || len(p.Rhs) != 2 {
			continue
		}
		for k := 1; k < l; k++ {
			if !t.At(i, k).Contains(p.Rhs[0]) || !t.At(i+k, l-k).Contains(p.Rhs[1]) {
				continue
			}
			for _, left := range allLeftmost(g, t, input, p.Rhs[0], i, k) {
				for _, right := range allLeftmost(g, t, input, p.Rhs[1], i+k, l-k) {
					seq := append([]int{idx}, left...)
					out = append(out, append(seq, right...))
				}
			}
		}
	}
	return out
}

// checkCNF verifies that the grammar can drive the CYK table fill: every
// production is a solitary terminal, a pair of nonterminals, or a dead
// ε-production (lefthand side unreferenced by any righthand side).
func checkCNF(g *cfg.Grammar) error {
	if !g.IsContextFree() {
		return fmt.Errorf("CYK requires a context-free grammar")
	}
	referenced := fixpoint.New[grampa.Symbol]()
	for _, p := range g.Prods() {
		for _, sym := range p.Rhs {
			if !sym.IsEpsilon() {
				referenced.Add(sym)
			}
		}
	}
	for _, p := range g.Prods() {
		switch {
		case len(p.Rhs) == 1 && g.IsTerminal(p.Rhs[0]):
		case len(p.Rhs) == 2 && g.IsNonterminal(p.Rhs[0]) && g.IsNonterminal(p.Rhs[1]):
		case p.Rhs.IsEpsilon() && !referenced.Contains(p.Lhs[0]):
		default:
			return fmt.Errorf("production %v is not in Chomsky Normal Form", p)
		}
	}
	return nil
}
