/*
Package fixpoint implements a generic fixed-point (closure) engine over sets.

Many grammar analyses are most naturally described as closures: start with a
seed set and repeatedly apply a monotone expansion function until nothing
changes. Productivity and reachability analysis, ε-rule inlining and
unit-rule elimination all share this shape, so the iteration lives here once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fixpoint
