package cfg

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg/fixpoint"
)

// Grammar is a formal grammar (N, T, P, S): nonterminals, terminals, an
// ordered duplicate-free sequence of productions, and a start symbol.
// Grammars are immutable by convention: no method mutates a grammar, every
// transformation returns a new one. Production order is stable and
// productions are addressable by index (see Prod and IndexOf), which the
// cyk package depends on for derivation reconstruction.
//
// The transformation pipelines (hygiene, CNF) and the cyk package require
// context-free grammars; the Derivation engine handles monotonic grammars
// as well.
type Grammar struct {
	n     *treeset.Set   // nonterminal symbols, sorted
	t     *treeset.Set   // terminal symbols, sorted
	p     []Production   // ordered, duplicate-free
	s     grampa.Symbol  // start symbol, member of n
	index map[string]int // production key → position in p
}

// New creates a grammar from explicit symbol sets, productions and start
// symbol, checking the structural invariants: N and T must be disjoint, S
// must be a nonterminal, every context-free production's lefthand side must
// be a nonterminal, and every symbol of every production must be a known
// symbol (or ε, alone in a righthand side). Duplicate productions are
// dropped, keeping the first occurrence.
func New(N []grampa.Symbol, T []grampa.Symbol, P []Production, S grampa.Symbol) (*Grammar, error) {
	nset := fixpoint.New(N...)
	tset := fixpoint.New(T...)
	for sym := range nset {
		if tset.Contains(sym) {
			return nil, fmt.Errorf("the terminal and nonterminal sets are not disjoint, both contain %q", sym)
		}
		if sym.IsEpsilon() {
			return nil, fmt.Errorf("ε cannot be a nonterminal")
		}
	}
	if tset.Contains(grampa.Epsilon) {
		return nil, fmt.Errorf("ε cannot be a terminal")
	}
	if !nset.Contains(S) {
		return nil, fmt.Errorf("the start symbol %q is not a nonterminal", S)
	}
	for _, prod := range P {
		if prod.IsContextFree() && !nset.Contains(prod.Lhs[0]) {
			return nil, fmt.Errorf("production %v has a lefthand side that is not a nonterminal", prod)
		}
		for _, sym := range prod.Lhs {
			if !nset.Contains(sym) && !tset.Contains(sym) {
				return nil, fmt.Errorf("production %v contains %q, which is neither a terminal nor a nonterminal", prod, sym)
			}
		}
		for _, sym := range prod.Rhs {
			if sym.IsEpsilon() {
				if len(prod.Rhs) != 1 {
					return nil, fmt.Errorf("production %v contains ε in a righthand side of length > 1", prod)
				}
				continue
			}
			if !nset.Contains(sym) && !tset.Contains(sym) {
				return nil, fmt.Errorf("production %v contains %q, which is neither a terminal nor a nonterminal", prod, sym)
			}
		}
	}
	return build(nset, tset, P, S), nil
}

// build assembles a grammar from pre-validated parts. Internal constructor
// for transformations, which produce valid grammars by construction.
func build(nset, tset fixpoint.Set[grampa.Symbol], P []Production, S grampa.Symbol) *Grammar {
	g := &Grammar{
		n:     treeset.NewWithStringComparator(),
		t:     treeset.NewWithStringComparator(),
		s:     S,
		index: make(map[string]int, len(P)),
	}
	for sym := range nset {
		g.n.Add(string(sym))
	}
	for sym := range tset {
		g.t.Add(string(sym))
	}
	for _, prod := range P {
		k := prod.key()
		if _, dup := g.index[k]; dup {
			continue
		}
		g.index[k] = len(g.p)
		g.p = append(g.p, prod)
	}
	return g
}

// FromString builds a context-free grammar from the textual notation, one
// production group per line:
//
//	LHS -> alt_1 | alt_2 | … | alt_n
//
// Alternatives are space-separated symbol sequences and ε denotes the empty
// righthand side; blank lines are ignored. The nonterminal set is exactly
// the set of lefthand sides seen, the terminals are all remaining symbols,
// and the start symbol is the first lefthand side.
func FromString(text string) (*Grammar, error) {
	P, err := ParseProductions(text, true)
	if err != nil {
		return nil, err
	}
	if len(P) == 0 {
		return nil, fmt.Errorf("no productions given")
	}
	nset := fixpoint.New[grampa.Symbol]()
	for _, prod := range P {
		nset.Add(prod.Lhs[0])
	}
	tset := fixpoint.New[grampa.Symbol]()
	for _, prod := range P {
		for _, sym := range prod.Rhs {
			if !sym.IsEpsilon() && !nset.Contains(sym) {
				tset.Add(sym)
			}
		}
	}
	return build(nset, tset, P, P[0].Lhs[0]), nil
}

// FromStringWithTerminals builds a grammar from the textual notation with an
// explicitly supplied terminal set. Unlike FromString, lefthand sides may
// consist of several symbols (monotonic grammars), and righthand sides may
// reference nonterminals that never appear as a lefthand side (undefined
// nonterminals, see RemoveUndefined). Nonterminals are all symbols not
// declared terminal; the start symbol is the first symbol of the first
// lefthand side.
func FromStringWithTerminals(text string, terminals ...grampa.Symbol) (*Grammar, error) {
	P, err := ParseProductions(text, false)
	if err != nil {
		return nil, err
	}
	if len(P) == 0 {
		return nil, fmt.Errorf("no productions given")
	}
	tset := fixpoint.New(terminals...)
	nset := fixpoint.New[grampa.Symbol]()
	for _, prod := range P {
		for _, sym := range prod.Lhs {
			if !tset.Contains(sym) {
				nset.Add(sym)
			}
		}
		for _, sym := range prod.Rhs {
			if !sym.IsEpsilon() && !tset.Contains(sym) {
				nset.Add(sym)
			}
		}
	}
	S := P[0].Lhs[0]
	if !nset.Contains(S) {
		return nil, fmt.Errorf("the start symbol %q is declared terminal", S)
	}
	return build(nset, tset, P, S), nil
}

// --- Accessors --------------------------------------------------------------

// Start returns the start symbol.
func (g *Grammar) Start() grampa.Symbol {
	return g.s
}

// Nonterminals returns the nonterminal symbols in sorted order.
func (g *Grammar) Nonterminals() []grampa.Symbol {
	return symbolValues(g.n)
}

// Terminals returns the terminal symbols in sorted order.
func (g *Grammar) Terminals() []grampa.Symbol {
	return symbolValues(g.t)
}

// IsNonterminal tests membership in N.
func (g *Grammar) IsNonterminal(sym grampa.Symbol) bool {
	return g.n.Contains(string(sym))
}

// IsTerminal tests membership in T.
func (g *Grammar) IsTerminal(sym grampa.Symbol) bool {
	return g.t.Contains(string(sym))
}

// IsContextFree returns true iff every production rewrites a single
// nonterminal.
func (g *Grammar) IsContextFree() bool {
	for _, prod := range g.p {
		if !prod.IsContextFree() {
			return false
		}
	}
	return true
}

// Prods returns the ordered production sequence. The returned slice is the
// grammar's own backing store and must be treated as read-only.
func (g *Grammar) Prods() []Production {
	return g.p
}

// Prod returns the production with the given index.
func (g *Grammar) Prod(i int) Production {
	return g.p[i]
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.p)
}

// IndexOf returns the stable index of a production, or -1 if the grammar
// does not contain it.
func (g *Grammar) IndexOf(p Production) int {
	if i, ok := g.index[p.key()]; ok {
		return i
	}
	return -1
}

// ProdsWhere returns all productions matching a filter, in production order.
func (g *Grammar) ProdsWhere(f Filter) []Production {
	var matches []Production
	for _, prod := range g.p {
		if f.Matches(prod) {
			matches = append(matches, prod)
		}
	}
	return matches
}

// Alternatives returns the righthand sides of all productions with the
// given nonterminal as lefthand side, in production order. The result is
// empty (not an error) if A has no productions.
func (g *Grammar) Alternatives(A grampa.Symbol) []grampa.Word {
	var alts []grampa.Word
	for _, prod := range g.p {
		if prod.IsContextFree() && prod.Lhs[0] == A {
			alts = append(alts, prod.Rhs)
		}
	}
	return alts
}

// Fingerprint returns a stable hash of the grammar, usable as a cheap
// equality check between transformation results.
func (g *Grammar) Fingerprint() string {
	view := struct {
		N []grampa.Symbol
		T []grampa.Symbol
		P []string
		S grampa.Symbol
	}{
		N: g.Nonterminals(),
		T: g.Terminals(),
		S: g.s,
	}
	for _, prod := range g.p {
		view.P = append(view.P, prod.key())
	}
	return fmt.Sprintf("%x", structhash.Md5(view, 1))
}

// Dump is a debugging helper, listing the indexed productions.
func (g *Grammar) Dump() {
	tracer().Debugf("Grammar with S = %q", g.s)
	tracer().Debugf("N = %v, T = %v", g.Nonterminals(), g.Terminals())
	for i, prod := range g.p {
		tracer().Debugf("%3d: %v", i, prod)
	}
}

// --- Restriction ------------------------------------------------------------

// RestrictTo returns a new grammar with N and T intersected with the given
// symbol set and only those productions whose symbols (lefthand and
// righthand) all lie within it. The start symbol is always retained in N,
// whether or not it appears in the set. This is the single primitive behind
// the hygiene pipeline.
func (g *Grammar) RestrictTo(symbols fixpoint.Set[grampa.Symbol]) *Grammar {
	nset := fixpoint.New(g.s)
	for _, sym := range g.Nonterminals() {
		if symbols.Contains(sym) {
			nset.Add(sym)
		}
	}
	tset := fixpoint.New[grampa.Symbol]()
	for _, sym := range g.Terminals() {
		if symbols.Contains(sym) {
			tset.Add(sym)
		}
	}
	var kept []Production
	for _, prod := range g.p {
		ok := true
		for _, sym := range prod.Lhs {
			if !symbols.Contains(sym) {
				ok = false
				break
			}
		}
		for _, sym := range prod.Rhs {
			if !ok {
				break
			}
			if !sym.IsEpsilon() && !symbols.Contains(sym) {
				ok = false
			}
		}
		if ok {
			kept = append(kept, prod)
		}
	}
	return build(nset, tset, kept, g.s)
}

// symbolSet collects N ∪ T as a set, the symbol universe of the grammar.
func (g *Grammar) symbolSet() fixpoint.Set[grampa.Symbol] {
	set := fixpoint.New[grampa.Symbol]()
	for _, sym := range g.Nonterminals() {
		set.Add(sym)
	}
	for _, sym := range g.Terminals() {
		set.Add(sym)
	}
	return set
}

func symbolValues(set *treeset.Set) []grampa.Symbol {
	syms := make([]grampa.Symbol, 0, set.Size())
	for _, v := range set.Values() {
		syms = append(syms, grampa.Symbol(v.(string)))
	}
	return syms
}
