/*
Package gff reads and writes the engine's generic file format: a
self-describing structured binary container with shared label, struct and
field-data tables.

The reader exposes a cursor API over the raw bytes (no up-front tree
allocation): Toplevel returns the root struct, fields decode on demand, and
type mismatches are soft failures. The builder writes canonically — structs
in first-visit order, labels interned at first use, field data packed
contiguously — so that a read/write cycle over a canonical file is
byte-identical. ToJSON projects a document into order-stable JSON.
*/
package gff

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.gff'
func tracer() tracing.Trace {
	return tracing.Select("aurora.gff")
}
