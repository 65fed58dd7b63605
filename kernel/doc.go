/*
Package kernel bundles the toolkit's process-wide services: configuration,
the resource manager, localized strings, rule tables, the effect system and
the object system, with an ordered start/shutdown lifecycle.

The bundle is explicit — construct a Services and pass it around when
embedding — with a thin package-level façade over a single default
instance for the common case. Multiple concurrently started Services are
not supported.
*/
package kernel

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.kernel'
func tracer() tracing.Trace {
	return tracing.Select("aurora.kernel")
}
