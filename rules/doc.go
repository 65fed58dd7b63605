/*
Package rules evaluates the declarative modifier/qualifier/selector
pipeline over game objects and 2DA tables.

A Selector reads one property off an object; a Qualifier tests a selector
against a range or set; a Modifier contributes a value to a derived
attribute, gated by a requirement (a qualifier list). Accumulation follows
the engine's stacking rules: identical (subtype, source) contributions keep
the maximum, different sources add, and the result is clamped per
attribute.

Class progressions, feat prerequisites, saving throws and skill flags come
out of 2DA sheets fetched lazily through an injected table source.
*/
package rules

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'aurora.rules'
func tracer() tracing.Trace {
	return tracing.Select("aurora.rules")
}
