/*
Package cfg implements context-free grammars and their classic transformations.

Grammars are immutable values: every transformation (restriction, hygiene
cleanup, the CNF pipeline steps) returns a new grammar and leaves its input
untouched. Productions are held as an ordered, duplicate-free sequence, so
clients may refer to productions by stable index; the cyk package relies on
this for derivation reconstruction.

Building a Grammar

Grammars are usually read from a line-oriented textual notation, one
production group per line, with '|' separating alternatives and 'ε' denoting
the empty righthand side:

	G, err := cfg.FromString(`
	    E -> E + E | E * E
	    E -> i
	`)

The nonterminals are the lefthand sides seen in the input; all remaining
symbols are terminals, and the start symbol is the first lefthand side.
Grammars may also be constructed from explicit symbol sets with New, which
checks the structural invariants (disjoint symbol sets, known start symbol,
well-formed productions).

Transformations

The hygiene pipeline removes non-productive and unreachable symbols
(G.Clean) or undefined nonterminals (G.RemoveUndefined). The CNF pipeline
(G.ToCNF) composes ε-rule elimination, unit-rule elimination, terminal
separation and binarization, in this order.

Derivations

A Derivation replays production applications over sentential forms, with
leftmost/rightmost convenience stepping and enumeration of all currently
applicable steps.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grampa.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.cfg")
}
