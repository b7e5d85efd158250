package cfg

import (
	"strconv"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg/fixpoint"
)

// Transformation pipeline towards Chomsky Normal Form. The four steps are
// order-dependent: each assumes the invariants established by the previous
// one. All steps require a context-free grammar.

// ToCNF converts a grammar to Chomsky Normal Form by eliminating ε-rules,
// then unit rules, then non-solitary terminals, and finally binarizing long
// righthand sides. The result still carries the dead rules of eliminated
// ε-bearing nonterminals (see EliminateEpsilonRules); apply Clean to drop
// them, but note that the cyk reconstruction of pre-CNF derivations needs
// them in place.
func (g *Grammar) ToCNF() *Grammar {
	return g.EliminateEpsilonRules().
		EliminateUnitRules().
		EliminateNonSolitaryTerminals().
		BinarizeRHS()
}

// IsCNF reports whether every production has a righthand side that is
// either a single terminal or exactly two nonterminals.
func IsCNF(g *Grammar) bool {
	for _, p := range g.Prods() {
		if !p.IsContextFree() {
			return false
		}
		switch len(p.Rhs) {
		case 1:
			if !g.IsTerminal(p.Rhs[0]) {
				return false
			}
		case 2:
			if !g.IsNonterminal(p.Rhs[0]) || !g.IsNonterminal(p.Rhs[1]) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// EliminateEpsilonRules removes the effect of ε-productions. For each
// nonterminal A with an ε-production, every occurrence of A in a righthand
// side is split into two variants: one with the occurrence deleted and one
// with it replaced by a fresh primed nonterminal A′, which is then defined
// by the non-ε alternatives of A and therefore never derives ε itself.
// Inlining runs as a closure, since rewriting can expose further
// occurrences and create new ε-productions for other nonterminals; every
// nonterminal is processed at most once. The rules of the processed
// nonterminals remain in the grammar (dead in most cases); Clean removes
// them.
func (g *Grammar) EliminateEpsilonRules() *Grammar {
	prods := append([]Production{}, g.Prods()...)
	nset := fixpoint.New(g.Nonterminals()...)
	tset := fixpoint.New(g.Terminals()...)
	alloc := newNameAllocator(g)
	seen := fixpoint.New[grampa.Symbol]()
	for {
		A, found := nextEpsilonLhs(prods, seen)
		if !found {
			break
		}
		seen.Add(A)
		prime := alloc.primed(A)
		nset.Add(prime)
		tracer().Debugf("eliminating ε-rule for %q, introducing %q", A, prime)
		// Inline occurrences of A until no righthand side mentions it.
		for {
			i, pos := findOccurrence(prods, A)
			if i < 0 {
				break
			}
			p := prods[i]
			del := make(grampa.Word, 0, len(p.Rhs)-1)
			del = append(append(del, p.Rhs[:pos]...), p.Rhs[pos+1:]...)
			if len(del) == 0 {
				del = grampa.Word{grampa.Epsilon}
			}
			pri := make(grampa.Word, 0, len(p.Rhs))
			pri = append(append(append(pri, p.Rhs[:pos]...), prime), p.Rhs[pos+1:]...)
			prods = replaceProd(prods, i,
				Production{Lhs: p.Lhs, Rhs: del},
				Production{Lhs: p.Lhs, Rhs: pri})
		}
		// Define A′ by the (rewritten) non-ε alternatives of A.
		for _, rhs := range alternativesIn(prods, A) {
			if !rhs.IsEpsilon() {
				d := prod(prime, rhs)
				if !containsProd(prods, d) {
					prods = append(prods, d)
				}
			}
		}
	}
	return build(nset, tset, prods, g.s)
}

// EliminateUnitRules replaces every unit production A → B by the
// alternatives of B. Processed unit productions are tracked in a seen-set
// keyed by the exact production, so cyclic unit chains (A → B, B → A)
// terminate; termination relies on that set, not on the production list
// shrinking. Self-loops A → A and replacements already processed are
// dropped.
func (g *Grammar) EliminateUnitRules() *Grammar {
	prods := append([]Production{}, g.Prods()...)
	seen := fixpoint.New[string]()
	for {
		i := -1
		for j, p := range prods {
			if len(p.Rhs) == 1 && g.IsNonterminal(p.Rhs[0]) && !seen.Contains(p.key()) {
				i = j
				break
			}
		}
		if i < 0 {
			break
		}
		p := prods[i]
		seen.Add(p.key())
		var repl []Production
		for _, rhs := range alternativesIn(prods, p.Rhs[0]) {
			if len(rhs) == 1 && rhs[0] == p.Lhs[0] {
				continue
			}
			cand := prod(p.Lhs[0], rhs)
			if seen.Contains(cand.key()) {
				continue
			}
			repl = append(repl, cand)
		}
		prods = replaceProd(prods, i, repl...)
	}
	return build(fixpoint.New(g.Nonterminals()...), fixpoint.New(g.Terminals()...), prods, g.s)
}

// EliminateNonSolitaryTerminals rewrites every righthand side of length > 1
// that contains a terminal, replacing each terminal x by a helper
// nonterminal defined as N_x → x. One helper is introduced per distinct
// terminal and reused across productions. Solitary terminal righthand
// sides (A → x) are left untouched.
func (g *Grammar) EliminateNonSolitaryTerminals() *Grammar {
	prods := append([]Production{}, g.Prods()...)
	nset := fixpoint.New(g.Nonterminals()...)
	tset := fixpoint.New(g.Terminals()...)
	alloc := newNameAllocator(g)
	helpers := make(map[grampa.Symbol]grampa.Symbol)
	var defs []Production
	for i, p := range prods {
		if len(p.Rhs) < 2 {
			continue
		}
		touched := false
		rhs := make(grampa.Word, 0, len(p.Rhs))
		for _, sym := range p.Rhs {
			if !g.IsTerminal(sym) {
				rhs = append(rhs, sym)
				continue
			}
			h, ok := helpers[sym]
			if !ok {
				h = alloc.forTerminal(sym)
				helpers[sym] = h
				nset.Add(h)
				defs = append(defs, prod(h, grampa.Word{sym}))
			}
			rhs = append(rhs, h)
			touched = true
		}
		if touched {
			prods[i] = Production{Lhs: p.Lhs, Rhs: rhs}
		}
	}
	for _, d := range defs {
		if !containsProd(prods, d) {
			prods = append(prods, d)
		}
	}
	return build(nset, tset, prods, g.s)
}

// BinarizeRHS splits every righthand side longer than two symbols into a
// chain of fresh nonterminals named after the lefthand side with a numeric
// suffix: A → α₀ α₁ … αₖ becomes A1 → α₀ α₁, A2 → A1 α₂, …, with the
// original production replaced by A → A_{k-1} αₖ. Righthand sides of
// length ≤ 2 are left untouched.
func (g *Grammar) BinarizeRHS() *Grammar {
	prods := append([]Production{}, g.Prods()...)
	nset := fixpoint.New(g.Nonterminals()...)
	tset := fixpoint.New(g.Terminals()...)
	alloc := newNameAllocator(g)
	var chains []Production
	for i, p := range prods {
		if len(p.Rhs) <= 2 {
			continue
		}
		prev := alloc.indexed(p.Lhs[0])
		nset.Add(prev)
		chains = append(chains, prod(prev, grampa.Word{p.Rhs[0], p.Rhs[1]}))
		for j := 2; j < len(p.Rhs)-1; j++ {
			next := alloc.indexed(p.Lhs[0])
			nset.Add(next)
			chains = append(chains, prod(next, grampa.Word{prev, p.Rhs[j]}))
			prev = next
		}
		prods[i] = prod(p.Lhs[0], grampa.Word{prev, p.Rhs[len(p.Rhs)-1]})
	}
	prods = append(prods, chains...)
	return build(nset, tset, prods, g.s)
}

// --- Fresh-name allocation --------------------------------------------------

const primeMark = "′"

// nameAllocator hands out fresh nonterminal names which are guaranteed not
// to collide with any symbol of the grammar under transformation, nor with
// each other. Allocation is deterministic: repeated runs on the same
// grammar produce the same names.
type nameAllocator struct {
	used     fixpoint.Set[grampa.Symbol]
	counters map[grampa.Symbol]int
}

func newNameAllocator(g *Grammar) *nameAllocator {
	return &nameAllocator{
		used:     g.symbolSet().Add(grampa.Epsilon),
		counters: make(map[grampa.Symbol]int),
	}
}

// primed returns A′ for A, appending further primes until the name is
// unused.
func (a *nameAllocator) primed(base grampa.Symbol) grampa.Symbol {
	name := base + primeMark
	for a.used.Contains(name) {
		name += primeMark
	}
	a.used.Add(name)
	return name
}

// forTerminal returns the helper nonterminal name N_x for terminal x.
func (a *nameAllocator) forTerminal(x grampa.Symbol) grampa.Symbol {
	name := "N_" + x
	for a.used.Contains(name) {
		name += primeMark
	}
	a.used.Add(name)
	return name
}

// indexed returns base1, base2, … skipping names already in use.
func (a *nameAllocator) indexed(base grampa.Symbol) grampa.Symbol {
	for {
		a.counters[base]++
		name := base + grampa.Symbol(strconv.Itoa(a.counters[base]))
		if !a.used.Contains(name) {
			a.used.Add(name)
			return name
		}
	}
}

// --- Worklist helpers -------------------------------------------------------

// nextEpsilonLhs finds the first ε-production, in production order, whose
// lefthand side has not been processed yet.
func nextEpsilonLhs(prods []Production, seen fixpoint.Set[grampa.Symbol]) (grampa.Symbol, bool) {
	for _, p := range prods {
		if p.isEpsilon() && p.IsContextFree() && !seen.Contains(p.Lhs[0]) {
			return p.Lhs[0], true
		}
	}
	return "", false
}

// findOccurrence locates the first occurrence of sym in any non-ε
// righthand side, returning production index and position, or (-1, -1).
func findOccurrence(prods []Production, sym grampa.Symbol) (int, int) {
	for i, p := range prods {
		if p.isEpsilon() {
			continue
		}
		for pos, s := range p.Rhs {
			if s == sym {
				return i, pos
			}
		}
	}
	return -1, -1
}

// alternativesIn collects the righthand sides of all productions with the
// given lefthand nonterminal, in list order.
func alternativesIn(prods []Production, A grampa.Symbol) []grampa.Word {
	var alts []grampa.Word
	for _, p := range prods {
		if p.IsContextFree() && p.Lhs[0] == A {
			alts = append(alts, p.Rhs)
		}
	}
	return alts
}

// containsProd tests by-value membership of a production in a list.
func containsProd(prods []Production, p Production) bool {
	k := p.key()
	for _, q := range prods {
		if q.key() == k {
			return true
		}
	}
	return false
}

// replaceProd substitutes the production at index i by the given
// replacements, keeping list order and dropping replacements that are
// already present elsewhere in the list.
func replaceProd(prods []Production, i int, repl ...Production) []Production {
	out := append([]Production{}, prods[:i]...)
	rest := prods[i+1:]
	for _, r := range repl {
		if !containsProd(out, r) && !containsProd(rest, r) {
			out = append(out, r)
		}
	}
	return append(out, rest...)
}
