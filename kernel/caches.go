package kernel

import (
	"sync"

	"github.com/okarren/aurora/res"
	"github.com/okarren/aurora/twoda"
)

// TwoDACache memoizes parsed 2DA sheets by name. It implements
// rules.TableSource.
type TwoDACache struct {
	resman *res.Manager

	mu     sync.RWMutex
	sheets map[string]*twoda.TwoDA
}

// NewTwoDACache creates a cache over a resource manager.
func NewTwoDACache(resman *res.Manager) *TwoDACache {
	return &TwoDACache{resman: resman, sheets: make(map[string]*twoda.TwoDA)}
}

// Get returns the parsed sheet for a name ("feat", "classes", ...); the
// second request is a hit. Missing or damaged sheets return nil, and the
// miss is not cached.
func (c *TwoDACache) Get(name string) *twoda.TwoDA {
	key := res.FoldTag(name)
	c.mu.RLock()
	sheet, ok := c.sheets[key]
	c.mu.RUnlock()
	if ok {
		return sheet
	}
	d := c.resman.Demand(res.MakeResource(key, res.TwoDA))
	if d.IsEmpty() {
		return nil
	}
	sheet = twoda.Parse(string(d.Bytes))
	if !sheet.Valid() {
		tracer().Errorf("twoda cache: %s.2da is damaged", key)
		return nil
	}
	c.mu.Lock()
	c.sheets[key] = sheet
	c.mu.Unlock()
	return sheet
}

// Clear empties the cache; module unload runs it.
func (c *TwoDACache) Clear() {
	c.mu.Lock()
	c.sheets = make(map[string]*twoda.TwoDA)
	c.mu.Unlock()
}

// ScriptParser is the external script-parser collaborator. The toolkit
// never interprets script sources itself.
type ScriptParser func(name string, source []byte) (any, error)

// ParsedScriptCache memoizes the collaborator's output per resref.
type ParsedScriptCache struct {
	resman *res.Manager
	parser ScriptParser

	mu      sync.RWMutex
	scripts map[string]any
}

// NewParsedScriptCache creates a cache delegating to parser.
func NewParsedScriptCache(resman *res.Manager, parser ScriptParser) *ParsedScriptCache {
	return &ParsedScriptCache{
		resman:  resman,
		parser:  parser,
		scripts: make(map[string]any),
	}
}

// Get parses a script once per resref; later requests share the result.
func (c *ParsedScriptCache) Get(name string) any {
	key := res.FoldTag(name)
	c.mu.RLock()
	parsed, ok := c.scripts[key]
	c.mu.RUnlock()
	if ok {
		return parsed
	}
	if c.parser == nil {
		return nil
	}
	d := c.resman.Demand(res.MakeResource(key, res.NSS))
	if d.IsEmpty() {
		return nil
	}
	parsed, err := c.parser(key, d.Bytes)
	if err != nil {
		tracer().Errorf("script cache: cannot parse %s: %v", key, err)
		return nil
	}
	c.mu.Lock()
	c.scripts[key] = parsed
	c.mu.Unlock()
	return parsed
}

// Clear empties the cache; module unload runs it.
func (c *ParsedScriptCache) Clear() {
	c.mu.Lock()
	c.scripts = make(map[string]any)
	c.mu.Unlock()
}

// Model is a loaded model payload. Geometry interpretation is a renderer
// concern; the cache tracks bytes and reference counts.
type Model struct {
	Name  string
	Bytes []byte
}

// ModelCache reference-counts loaded models; a release at zero erases the
// entry.
type ModelCache struct {
	resman *res.Manager

	mu      sync.Mutex
	entries map[string]*modelEntry
}

type modelEntry struct {
	model *Model
	refs  int
}

// NewModelCache creates a cache over a resource manager.
func NewModelCache(resman *res.Manager) *ModelCache {
	return &ModelCache{resman: resman, entries: make(map[string]*modelEntry)}
}

// Load returns a model, bumping its reference count. Two loads of the
// same name share one entry.
func (c *ModelCache) Load(name string) *Model {
	key := res.FoldTag(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.refs++
		return e.model
	}
	d := c.resman.Demand(res.MakeResource(key, res.MDL))
	if d.IsEmpty() {
		return nil
	}
	m := &Model{Name: key, Bytes: d.Bytes}
	c.entries[key] = &modelEntry{model: m, refs: 1}
	return m
}

// Release drops one reference; the entry goes away at zero.
func (c *ModelCache) Release(name string) {
	key := res.FoldTag(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		tracer().Errorf("model cache: release of unloaded %s", key)
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(c.entries, key)
	}
}

// Len returns the number of cached entries; tests watch it across
// release cycles.
func (c *ModelCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cache; module unload runs it.
func (c *ModelCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*modelEntry)
	c.mu.Unlock()
}
