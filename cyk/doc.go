/*
Package cyk implements the Cocke–Younger–Kasami recognition algorithm for
grammars in Chomsky Normal Form, together with the reconstruction of
leftmost derivations from the recognition table.

A Table is filled bottom-up over all substrings of the input word; the
input is recognized iff the start symbol derives the full span. From a
filled table, LeftmostProds reconstructs one leftmost derivation
(deterministically) and AllLeftmostProds enumerates all of them. The
Oracle type lifts reconstruction back to the pre-CNF grammar, so a
derivation in the original grammar can be recovered from the table of its
CNF transform.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cyk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grampa.cyk'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.cyk")
}
