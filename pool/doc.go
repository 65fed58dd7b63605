/*
Package pool provides generational slot pools.

A handle is an (index, generation) pair; a slot's generation advances on
every destroy, so stale handles are detected instead of resolving to a
recycled value. Generations saturate: a slot whose generation reaches the
maximum is retired and never handed out again.
*/
package pool

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.pool'
func tracer() tracing.Trace {
	return tracing.Select("aurora.pool")
}
