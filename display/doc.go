/*
Package display renders grammars, derivations and CYK recognition tables
for terminal output. Rendering is moderately fancy (colored tables via
pterm) but returns plain strings, so callers decide where output goes.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package display

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grampa.display'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.display")
}
