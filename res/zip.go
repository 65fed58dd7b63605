package res

import (
	"archive/zip"
	"io"
	"path"
	"path/filepath"
)

// Zip is a PKZIP-backed container. Entry filenames anywhere under the
// archive root are considered; an entry is visible when its base name
// parses as a valid Resource. Entries decompress on Demand.
type Zip struct {
	path    string
	name    string
	entries map[Resource]*zip.File
	order   []Resource
	valid   bool
}

// NewZip opens and scans a zip archive.
func NewZip(zipPath string) *Zip {
	z := &Zip{
		path:    filepath.Clean(zipPath),
		name:    filepath.Base(zipPath),
		entries: make(map[Resource]*zip.File),
	}
	rc, err := zip.OpenReader(zipPath)
	if err != nil {
		tracer().Errorf("zip: cannot open %s: %v", zipPath, err)
		return z
	}
	// The reader stays open for the container's lifetime; Demand needs it.
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		r, err := ResourceFromPath(path.Base(f.Name))
		if err != nil {
			continue
		}
		if _, dup := z.entries[r]; dup {
			tracer().Errorf("zip: duplicate resource %s in %s", r, z.name)
			continue
		}
		z.entries[r] = f
		z.order = append(z.order, r)
	}
	z.valid = true
	return z
}

// Name returns the archive's display name.
func (z *Zip) Name() string { return z.name }

// Path returns the archive's backing path.
func (z *Zip) Path() string { return z.path }

// Valid reports whether the archive opened cleanly.
func (z *Zip) Valid() bool { return z.valid }

// Size returns the number of resources.
func (z *Zip) Size() int { return len(z.entries) }

// Contains checks for a resource.
func (z *Zip) Contains(r Resource) bool {
	_, ok := z.entries[r]
	return ok
}

// Demand decompresses an entry.
func (z *Zip) Demand(r Resource) Data {
	f, ok := z.entries[r]
	if !ok {
		return Data{ID: r}
	}
	rd, err := f.Open()
	if err != nil {
		tracer().Errorf("zip: cannot open entry %s in %s: %v", r, z.name, err)
		return Data{ID: r}
	}
	defer rd.Close()
	b, err := io.ReadAll(rd)
	if err != nil {
		tracer().Errorf("zip: cannot decompress %s in %s: %v", r, z.name, err)
		return Data{ID: r}
	}
	return Data{ID: r, Bytes: b, Mtime: f.Modified, Size: int64(len(b))}
}

// Stat returns metadata from the zip directory, without decompressing.
func (z *Zip) Stat(r Resource) (Meta, bool) {
	f, ok := z.entries[r]
	if !ok {
		return Meta{}, false
	}
	return Meta{Mtime: f.Modified, Size: int64(f.UncompressedSize64)}, true
}

// Visit enumerates resources in archive-directory order.
func (z *Zip) Visit(fn func(r Resource)) {
	for _, r := range z.order {
		fn(r)
	}
}
