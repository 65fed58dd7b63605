package res

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Resource is the identity of one game resource: a resref plus a type.
type Resource struct {
	Resref Resref
	Type   Type
}

// MakeResource builds a resource identity from a name and type.
func MakeResource(name string, t Type) Resource {
	return Resource{Resref: MakeResref(name), Type: t}
}

// ResourceFromPath parses "some/dir/nw_chicken.utc" into a Resource. It
// fails when the extension is unknown or the stem exceeds the resref
// capacity.
func ResourceFromPath(path string) (Resource, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return Resource{}, fmt.Errorf("resource path %q has no extension", path)
	}
	t := TypeFromExtension(ext)
	if t == Invalid {
		return Resource{}, fmt.Errorf("resource path %q has unknown extension %q", path, ext)
	}
	stem := strings.TrimSuffix(base, ext)
	if len(stem) > ResrefMaxSize {
		return Resource{}, fmt.Errorf("resource name %q exceeds %d characters", stem, ResrefMaxSize)
	}
	return Resource{Resref: MakeResref(stem), Type: t}, nil
}

// Filename renders the resource as "resref.ext".
func (r Resource) Filename() string {
	return r.Resref.String() + "." + r.Type.Extension()
}

func (r Resource) String() string {
	return r.Filename()
}

// Valid reports whether both parts of the identity are usable.
func (r Resource) Valid() bool {
	return !r.Resref.Empty() && r.Type.Valid()
}

// MarshalJSON encodes the resource as its filename.
func (r Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Filename())
}

// UnmarshalJSON decodes a filename back into a resource identity.
func (r *Resource) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ResourceFromPath(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Data is the result of demanding a resource from a container or manager.
// A miss yields zero-length Bytes; callers must check.
type Data struct {
	ID    Resource
	Bytes []byte
	Mtime time.Time
	Size  int64
}

// IsEmpty reports a missed lookup.
func (d Data) IsEmpty() bool {
	return len(d.Bytes) == 0
}

// Meta carries stat information without the payload.
type Meta struct {
	Mtime time.Time
	Size  int64
}
