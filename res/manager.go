package res

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Manager is a priority-ordered namespace over resources, composed from
// stacked containers. Containers mounted later shadow earlier ones at
// (resref, type) granularity. Module containers form their own group on
// top of the base stack, so unloading a module restores the base exactly.
type Manager struct {
	module []stackEntry // newest first; searched before base
	base   []stackEntry // newest first
}

type stackEntry struct {
	c     Container
	owned bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddContainer pushes a container on top of the base stack. It refuses —
// returning false — when an equivalent container (same backing path, or
// same name with no path) is already mounted, or when the container is
// invalid. takeOwnership records that the manager is responsible for the
// container's lifetime; borrowed containers must outlive the manager.
func (m *Manager) AddContainer(c Container, takeOwnership bool) bool {
	if c == nil {
		return false
	}
	if !c.Valid() {
		tracer().Errorf("resman: refusing invalid container %s", c.Name())
		return false
	}
	if m.mounted(c) {
		tracer().Errorf("resman: container %s already mounted", c.Name())
		return false
	}
	tracer().Infof("resman: mounted %s (%d resources)", c.Name(), c.Size())
	m.base = append([]stackEntry{{c: c, owned: takeOwnership}}, m.base...)
	return true
}

func (m *Manager) mounted(c Container) bool {
	same := func(e stackEntry) bool {
		if c.Path() != "" && e.c.Path() == c.Path() {
			return true
		}
		return c.Path() == "" && e.c.Name() == c.Name()
	}
	for _, e := range m.module {
		if same(e) {
			return true
		}
	}
	for _, e := range m.base {
		if same(e) {
			return true
		}
	}
	return false
}

// each walks the stack top-down: module group first, then base.
func (m *Manager) each(fn func(c Container) bool) {
	for _, e := range m.module {
		if fn(e.c) {
			return
		}
	}
	for _, e := range m.base {
		if fn(e.c) {
			return
		}
	}
}

// Size returns the total resource count over all containers, shadowed
// duplicates included.
func (m *Manager) Size() int {
	n := 0
	m.each(func(c Container) bool {
		n += c.Size()
		return false
	})
	return n
}

// ContainerCount returns the number of mounted containers.
func (m *Manager) ContainerCount() int {
	return len(m.module) + len(m.base)
}

// Contains scans top-down, stopping at the first container holding r.
func (m *Manager) Contains(r Resource) bool {
	found := false
	m.each(func(c Container) bool {
		found = c.Contains(r)
		return found
	})
	return found
}

// Demand returns the bytes of the topmost copy of r, empty on a miss.
// Nothing is cached at this layer.
func (m *Manager) Demand(r Resource) Data {
	out := Data{ID: r}
	m.each(func(c Container) bool {
		if !c.Contains(r) {
			return false
		}
		out = c.Demand(r)
		return true
	})
	return out
}

// Stat returns metadata of the topmost copy of r without a full read.
func (m *Manager) Stat(r Resource) (Meta, bool) {
	var meta Meta
	ok := false
	m.each(func(c Container) bool {
		meta, ok = c.Stat(r)
		return ok
	})
	return meta, ok
}

// Visit enumerates every resource exactly once, reported from the topmost
// container owning it. Within one container, visit order is the
// container's natural order; containers are walked top-down.
func (m *Manager) Visit(fn func(r Resource)) {
	seen := make(map[Resource]bool)
	m.each(func(c Container) bool {
		c.Visit(func(r Resource) {
			if !seen[r] {
				seen[r] = true
				fn(r)
			}
		})
		return false
	})
}

// Extract materializes every resource whose filename matches re into
// destDir, honoring shadowing. It returns the number of files written.
func (m *Manager) Extract(re *regexp.Regexp, destDir string) (int, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("resman: cannot create %s: %w", destDir, err)
	}
	count := 0
	var firstErr error
	m.Visit(func(r Resource) {
		name := r.Filename()
		if !re.MatchString(name) {
			return
		}
		d := m.Demand(r)
		if d.IsEmpty() {
			tracer().Errorf("resman: extract skipped empty %s", name)
			return
		}
		if err := os.WriteFile(filepath.Join(destDir, name), d.Bytes, 0o644); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		count++
	})
	return count, firstErr
}

// --- Module group -----------------------------------------------------------

// MountModule opens the container for a module path — a .mod/.erf/.hak/.sav
// archive, a .zip, or a directory — and mounts it into the module group.
func (m *Manager) MountModule(path string) (Container, error) {
	var c Container
	switch {
	case HasSuffixFold(path, ".mod"), HasSuffixFold(path, ".erf"),
		HasSuffixFold(path, ".hak"), HasSuffixFold(path, ".sav"),
		HasSuffixFold(path, ".nwm"):
		c = NewErf(path)
	case HasSuffixFold(path, ".zip"):
		c = NewZip(path)
	default:
		fi, err := os.Stat(path)
		if err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("resman: %s is not a module container", path)
		}
		c = NewDirectory(path)
	}
	if !c.Valid() {
		return nil, fmt.Errorf("resman: cannot open module container %s", path)
	}
	if !m.MountModuleContainer(c) {
		return nil, fmt.Errorf("resman: module container %s already mounted", path)
	}
	return c, nil
}

// MountModuleContainer mounts a pre-built container (a hak, a NWSync
// manifest, a tlk override directory) into the module group.
func (m *Manager) MountModuleContainer(c Container) bool {
	if c == nil || !c.Valid() {
		return false
	}
	if m.mounted(c) {
		return false
	}
	tracer().Infof("resman: mounted module container %s (%d resources)", c.Name(), c.Size())
	m.module = append([]stackEntry{{c: c, owned: true}}, m.module...)
	return true
}

// UnloadModule drops the whole module group.
func (m *Manager) UnloadModule() {
	if len(m.module) > 0 {
		tracer().Infof("resman: unmounting %d module containers", len(m.module))
	}
	m.module = nil
}

// ContainerNames lists mounted containers top-down, for diagnostics.
func (m *Manager) ContainerNames() []string {
	var names []string
	m.each(func(c Container) bool {
		names = append(names, c.Name())
		return false
	})
	return names
}

// DemandByName is a convenience for "resref.ext" lookups.
func (m *Manager) DemandByName(filename string) Data {
	r, err := ResourceFromPath(strings.TrimSpace(filename))
	if err != nil {
		return Data{}
	}
	return m.Demand(r)
}
