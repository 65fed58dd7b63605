package res

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Directory is a filesystem-backed container. Files whose names parse as a
// valid Resource are visible; everything else is ignored. On case-sensitive
// filesystems lookups go through the lowered filename recorded at scan
// time; the native comparison is trusted where the filesystem folds case
// itself.
type Directory struct {
	path    string
	name    string
	entries map[Resource]string // resource -> on-disk filename
	order   []Resource
	valid   bool
}

// NewDirectory scans a directory into a container. The scan is shallow;
// the legacy layout never nests resources.
func NewDirectory(path string) *Directory {
	d := &Directory{
		path:    filepath.Clean(path),
		name:    filepath.Base(filepath.Clean(path)),
		entries: make(map[Resource]string),
	}
	items, err := os.ReadDir(d.path)
	if err != nil {
		tracer().Errorf("directory container: cannot read %s: %v", path, err)
		return d
	}
	for _, it := range items {
		if it.IsDir() {
			continue
		}
		r, err := ResourceFromPath(it.Name())
		if err != nil {
			continue
		}
		if _, dup := d.entries[r]; dup {
			// Two filenames folding to the same resource; first one wins.
			tracer().Errorf("directory container: duplicate resource %s in %s", r, path)
			continue
		}
		d.entries[r] = it.Name()
		d.order = append(d.order, r)
	}
	d.valid = true
	return d
}

// Name returns the directory's base name.
func (d *Directory) Name() string { return d.name }

// Path returns the cleaned directory path.
func (d *Directory) Path() string { return d.path }

// Valid reports whether the directory was readable at scan time.
func (d *Directory) Valid() bool { return d.valid }

// Size returns the number of resources found by the scan.
func (d *Directory) Size() int { return len(d.entries) }

// Contains checks for a resource.
func (d *Directory) Contains(r Resource) bool {
	_, ok := d.entries[r]
	return ok
}

// Demand reads the backing file.
func (d *Directory) Demand(r Resource) Data {
	fname, ok := d.entries[r]
	if !ok {
		return Data{ID: r}
	}
	full := filepath.Join(d.path, fname)
	b, err := os.ReadFile(full)
	if err != nil {
		tracer().Errorf("directory container: cannot read %s: %v", full, err)
		return Data{ID: r}
	}
	var mtime time.Time
	if fi, err := os.Stat(full); err == nil {
		mtime = fi.ModTime()
	}
	return Data{ID: r, Bytes: b, Mtime: mtime, Size: int64(len(b))}
}

// Stat stats the backing file.
func (d *Directory) Stat(r Resource) (Meta, bool) {
	fname, ok := d.entries[r]
	if !ok {
		return Meta{}, false
	}
	fi, err := os.Stat(filepath.Join(d.path, fname))
	if err != nil {
		return Meta{}, false
	}
	return Meta{Mtime: fi.ModTime(), Size: fi.Size()}, true
}

// Visit enumerates resources in scan order.
func (d *Directory) Visit(fn func(r Resource)) {
	for _, r := range d.order {
		fn(r)
	}
}

// HasSuffixFold is a small helper for case-folded extension checks on
// native filenames.
func HasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix))
}
