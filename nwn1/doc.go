/*
Package nwn1 is the NWN1/EE game profile: the constants, effect callbacks
and baseline modifiers that bind the generic rules and effect machinery to
this particular game's tables.

Loading the profile registers everything into a kernel service bundle; the
toolkit core stays game-agnostic.
*/
package nwn1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.nwn1'
func tracer() tracing.Trace {
	return tracing.Select("aurora.nwn1")
}
