/*
Package aurora is a toolkit for the data model of the Aurora-engine games:
it parses the legacy binary and textual asset formats (GFF, ERF, KEY/BIF,
TLK, 2DA), arbitrates resource lookups across stacked containers, pools
runtime entities behind generational handles, and evaluates the rules
engine over loaded objects.

This root package is a small convenience layer; the machinery lives in the
per-concern packages (res, gff, twoda, i18n, pool, objects, rules, kernel)
and the nwn1 game profile.
*/
package aurora

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/kernel"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/res"
)

// tracer writes to trace with key 'aurora'
func tracer() tracing.Trace {
	return tracing.Select("aurora")
}

// ParseGff decodes a GFF document from raw bytes. The document keeps a
// view of the data; it must not change while the document is in use.
func ParseGff(data []byte) *gff.Gff {
	return gff.FromBytes(data)
}

// OpenContainer opens any supported container by path: an ERF-family
// archive, a zip, a KEY index, or a directory.
func OpenContainer(path string) (res.Container, error) {
	var c res.Container
	switch {
	case res.HasSuffixFold(path, ".key"):
		c = res.NewKeyBif(path)
	case res.HasSuffixFold(path, ".zip"):
		c = res.NewZip(path)
	case res.HasSuffixFold(path, ".erf"), res.HasSuffixFold(path, ".mod"),
		res.HasSuffixFold(path, ".hak"), res.HasSuffixFold(path, ".sav"),
		res.HasSuffixFold(path, ".nwm"):
		c = res.NewErf(path)
	default:
		c = res.NewDirectory(path)
	}
	if !c.Valid() {
		return nil, fmt.Errorf("aurora: cannot open container %s", path)
	}
	return c, nil
}

// LoadModule brings a module up in the default service bundle, which must
// have been started (see kernel.Start).
func LoadModule(name string) (*objects.Module, error) {
	s := kernel.Service()
	if s == nil {
		return nil, fmt.Errorf("aurora: services not started")
	}
	mod, err := s.LoadModule(name, nil)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded module %s", name)
	return mod, nil
}

// UnloadModule tears the default bundle's module down.
func UnloadModule() {
	if s := kernel.Service(); s != nil {
		s.UnloadModule()
	}
}
