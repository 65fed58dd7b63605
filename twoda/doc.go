/*
Package twoda parses and writes the engine's textual tabular format.

A 2DA file starts with the signature line "2DA V2.0", an optional
"DEFAULT:" line, a column-header line, and whitespace-separated data rows
where "****" denotes an empty cell. Cells carry no type of their own; they
are typed on access, and empty is a first-class value distinct from zero.
*/
package twoda

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.twoda'
func tracer() tracing.Trace {
	return tracing.Select("aurora.twoda")
}
