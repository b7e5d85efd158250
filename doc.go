/*
Package grampa is a workbench for context-free grammars.

GRAMPA (GRAMmar PlAyground) implements the classic algorithms taught in
formal-language courses: grammar hygiene (removal of unproductive,
unreachable and undefined symbols), transformation to Chomsky Normal Form,
simulation of leftmost/rightmost derivations, and CYK parsing with
reconstruction of derivations in the original, pre-CNF grammar.
Package structure is as follows:

■ cfg: Package cfg implements productions, grammars, derivations and the
grammar transformation pipelines.

■ cfg/fixpoint: Package fixpoint provides the generic closure (fixed point)
engine driving the set-based analyses.

■ cyk: Package cyk implements the Cocke–Younger–Kasami recognizer and
derivation reconstruction.

■ display: Package display renders grammars, derivations and CYK tables
for terminals.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grampa
