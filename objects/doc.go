/*
Package objects holds the in-memory game object model: creatures, items,
doors, areas, modules and the rest, plus the effect values that attach to
them.

Object kinds are discriminated by a tag, not a type hierarchy; fields every
object shares sit in a Common record composed into each variant. Objects
are pooled — see the kernel package — and reference one another through
generational handles, never through owning pointers, so cyclic graphs
(areas referencing creatures referencing the area) tear down cleanly.

Blueprint (de)serializers translate between GFF documents, JSON and object
values under a serialization profile; the Creature pair is the fully
worked one.
*/
package objects

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.objects'
func tracer() tracing.Trace {
	return tracing.Select("aurora.objects")
}
