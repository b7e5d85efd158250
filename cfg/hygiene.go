package cfg

import (
	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg/fixpoint"
)

// Grammar hygiene: closure-based analyses and the cleanup transformations
// built on them. All functions in this file require a context-free grammar.

// ProductiveSymbols returns the symbols that derive some terminal string.
// Terminals are trivially productive; a nonterminal is productive as soon
// as one of its alternatives consists of productive symbols only (an
// ε-righthand side counts as vacuously productive).
func ProductiveSymbols(g *Grammar) fixpoint.Set[grampa.Symbol] {
	return fixpoint.Closure(func(S fixpoint.Set[grampa.Symbol]) fixpoint.Set[grampa.Symbol] {
		for _, p := range g.Prods() {
			productive := true
			for _, sym := range p.Rhs {
				if !sym.IsEpsilon() && !S.Contains(sym) {
					productive = false
					break
				}
			}
			if productive {
				S.Add(p.Lhs[0])
			}
		}
		return S
	}, fixpoint.New(g.Terminals()...))
}

// ReachableSymbols returns the symbols that can appear in some sentential
// form derivable from the start symbol.
func ReachableSymbols(g *Grammar) fixpoint.Set[grampa.Symbol] {
	return fixpoint.Closure(func(S fixpoint.Set[grampa.Symbol]) fixpoint.Set[grampa.Symbol] {
		for _, p := range g.Prods() {
			if !S.Contains(p.Lhs[0]) {
				continue
			}
			for _, sym := range p.Rhs {
				if !sym.IsEpsilon() {
					S.Add(sym)
				}
			}
		}
		return S
	}, fixpoint.New(g.Start()))
}

// NullableSymbols returns the nonterminals that derive the empty word,
// directly or through a chain of nullable symbols.
func NullableSymbols(g *Grammar) fixpoint.Set[grampa.Symbol] {
	return fixpoint.Closure(func(S fixpoint.Set[grampa.Symbol]) fixpoint.Set[grampa.Symbol] {
		for _, p := range g.Prods() {
			nullable := true
			for _, sym := range p.Rhs {
				if !sym.IsEpsilon() && !S.Contains(sym) {
					nullable = false
					break
				}
			}
			if nullable {
				S.Add(p.Lhs[0])
			}
		}
		return S
	}, fixpoint.New[grampa.Symbol]())
}

// Clean removes all non-productive and unreachable symbols, together with
// every production using them. Reachability is computed on the grammar
// already restricted to productive symbols; restricting in the opposite
// order may leave symbols that only become unreachable once non-productive
// branches are gone.
func (g *Grammar) Clean() *Grammar {
	productive := g.RestrictTo(ProductiveSymbols(g))
	return productive.RestrictTo(ReachableSymbols(productive))
}

// RemoveUndefined removes every nonterminal that has no production, i.e.
// restricts the grammar to the defined lefthand sides and the terminals.
// Undefined nonterminals are a subset of the non-productive ones, so Clean
// subsumes this transformation; it is nevertheless exposed as an
// independent operation.
func (g *Grammar) RemoveUndefined() *Grammar {
	defined := fixpoint.New(g.Terminals()...)
	for _, p := range g.Prods() {
		defined.Add(p.Lhs[0])
	}
	return g.RestrictTo(defined)
}
