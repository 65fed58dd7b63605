/*
Package res names, stores and locates game resources.

A resource is identified by a (resref, type) pair. Resrefs are short,
case-insensitive ASCII names; types are dense numeric identifiers with a
bidirectional mapping to file extensions. Containers (directories, ERF
archives, KEY/BIF indexes, zip files, NWSync shards) hold resource bytes and
are stacked into a Manager, which arbitrates lookups by priority.

Package res is a low-level package: it hands out raw bytes and leaves their
interpretation to the format packages (gff, twoda, i18n) and to clients.
*/
package res

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.res'
func tracer() tracing.Trace {
	return tracing.Select("aurora.res")
}
