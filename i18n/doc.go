/*
Package i18n holds localized text: language identifiers, localized strings
(LocString) and the talk-table string database (Tlk).

Text in the legacy data files is 8-bit Windows-1252 for the western
languages; this package converts at the file boundary and deals in UTF-8
everywhere else.
*/
package i18n

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.i18n'
func tracer() tracing.Trace {
	return tracing.Select("aurora.i18n")
}
