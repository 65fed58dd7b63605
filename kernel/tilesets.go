package kernel

import (
	"strconv"
	"strings"
	"sync"

	"github.com/okarren/aurora/res"
)

// Tileset is a parsed .set file: tileset properties plus the tile models
// it references.
type Tileset struct {
	Name       string
	TileCount  int
	TileModels []string
}

// TilesetRegistry parses .set files and registers their tile models with
// the model cache.
type TilesetRegistry struct {
	resman *res.Manager
	models *ModelCache

	mu       sync.RWMutex
	tilesets map[string]*Tileset
}

// NewTilesetRegistry creates a registry over the resource manager and
// model cache.
func NewTilesetRegistry(resman *res.Manager, models *ModelCache) *TilesetRegistry {
	return &TilesetRegistry{
		resman:   resman,
		models:   models,
		tilesets: make(map[string]*Tileset),
	}
}

// Load parses a tileset and loads every referenced tile model. A second
// load of the same name is a cache hit.
func (r *TilesetRegistry) Load(name string) *Tileset {
	key := res.FoldTag(name)
	r.mu.RLock()
	ts, ok := r.tilesets[key]
	r.mu.RUnlock()
	if ok {
		return ts
	}
	d := r.resman.Demand(res.MakeResource(key, res.SET))
	if d.IsEmpty() {
		return nil
	}
	ts = parseSet(key, string(d.Bytes))
	if ts == nil {
		return nil
	}
	for _, model := range ts.TileModels {
		if r.models.Load(model) == nil {
			tracer().Errorf("tilesets: %s references missing model %s", key, model)
		}
	}
	r.mu.Lock()
	r.tilesets[key] = ts
	r.mu.Unlock()
	return ts
}

// Get returns an already loaded tileset, nil otherwise.
func (r *TilesetRegistry) Get(name string) *Tileset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tilesets[res.FoldTag(name)]
}

// Clear drops loaded tilesets and releases their models; module unload
// runs it.
func (r *TilesetRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ts := range r.tilesets {
		for _, model := range ts.TileModels {
			r.models.Release(model)
		}
	}
	r.tilesets = make(map[string]*Tileset)
}

// parseSet reads the INI-shaped .set format: a [GENERAL] section with the
// display name, a [TILES] count, and one [TILEn] section per tile naming
// its model.
func parseSet(name, text string) *Tileset {
	ts := &Tileset{Name: name}
	section := ""
	inTile := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToUpper(line[1 : len(line)-1])
			inTile = strings.HasPrefix(section, "TILE") && section != "TILES"
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		switch {
		case section == "GENERAL" && strings.EqualFold(k, "Name"):
			ts.Name = v
		case section == "TILES" && strings.EqualFold(k, "Count"):
			n, err := strconv.Atoi(v)
			if err != nil {
				tracer().Errorf("tilesets: bad tile count %q in %s", v, name)
				return nil
			}
			ts.TileCount = n
		case inTile && strings.EqualFold(k, "Model"):
			ts.TileModels = append(ts.TileModels, strings.ToLower(v))
		}
	}
	if ts.TileCount == 0 && len(ts.TileModels) == 0 {
		tracer().Errorf("tilesets: %s has no tiles", name)
		return nil
	}
	return ts
}
