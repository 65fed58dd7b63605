package kernel

import (
	"os"
	"path/filepath"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/pool"
	"github.com/okarren/aurora/res"
)

// ObjectSystem pools every live game object and keeps the secondary
// indices: tag lookup, blueprint template cache, and the player registry.
// All mutation runs on the main thread.
type ObjectSystem struct {
	cfg    Config
	resman *res.Manager

	pool      *pool.Pool[objects.Object]
	byTag     map[string][]pool.Handle
	templates map[res.Resource]*gff.Gff
	players   map[playerKey]pool.Handle
}

type playerKey struct {
	cdkey string
	name  string
}

// NewObjectSystem creates an empty object system.
func NewObjectSystem(cfg Config, resman *res.Manager) *ObjectSystem {
	return &ObjectSystem{
		cfg:       cfg,
		resman:    resman,
		pool:      pool.New[objects.Object](),
		byTag:     make(map[string][]pool.Handle),
		templates: make(map[res.Resource]*gff.Gff),
		players:   make(map[playerKey]pool.Handle),
	}
}

// alloc pools an object and indexes its tag.
func (s *ObjectSystem) alloc(obj objects.Object) pool.Handle {
	h, slot := s.pool.Create()
	*slot = obj
	obj.CommonData().SetHandle(h)
	if tag := obj.CommonData().Tag; tag != "" {
		key := res.FoldTag(tag)
		s.byTag[key] = append(s.byTag[key], h)
	}
	return h
}

// Get resolves a handle to its object, nil when stale.
func (s *ObjectSystem) Get(h pool.Handle) objects.Object {
	slot := s.pool.Get(h)
	if slot == nil {
		return nil
	}
	return *slot
}

// GetCreature resolves a handle to a creature, nil when stale or not a
// creature.
func (s *ObjectSystem) GetCreature(h pool.Handle) *objects.Creature {
	return objects.AsCreature(s.Get(h))
}

// Valid reports whether a handle still resolves.
func (s *ObjectSystem) Valid(h pool.Handle) bool {
	return s.pool.Valid(h)
}

// Destroy releases an object. Areas destroy their children first, in
// category order; destroying a stale handle is a logged no-op.
func (s *ObjectSystem) Destroy(h pool.Handle) {
	obj := s.Get(h)
	if obj == nil {
		tracer().Errorf("objects: destroy of dead handle {%d %d}", h.Index, h.Generation)
		return
	}
	if area := objects.AsArea(obj); area != nil {
		for _, group := range [][]pool.Handle{
			area.Creatures, area.Doors, area.Encounters, area.Placeables,
			area.Sounds, area.Stores, area.Triggers, area.Waypoints,
		} {
			for _, child := range group {
				s.Destroy(child)
			}
		}
	}
	if mod := objects.AsModule(obj); mod != nil {
		for _, a := range mod.Areas {
			s.Destroy(a)
		}
	}
	if tag := obj.CommonData().Tag; tag != "" {
		key := res.FoldTag(tag)
		list := s.byTag[key]
		for i, have := range list {
			if have == h {
				s.byTag[key] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(s.byTag[key]) == 0 {
			delete(s.byTag, key)
		}
	}
	s.pool.Destroy(h)
}

// GetByTag returns the nth live object carrying a tag, in creation order;
// nil when fewer than n+1 matches exist. Tag comparison folds case.
func (s *ObjectSystem) GetByTag(tag string, nth int) objects.Object {
	list := s.byTag[res.FoldTag(tag)]
	if nth < 0 || nth >= len(list) {
		return nil
	}
	return s.Get(list[nth])
}

// template returns the parsed blueprint document for a resource, caching
// the parse; repeated loads share parse cost but build fresh instances.
func (s *ObjectSystem) template(r res.Resource) *gff.Gff {
	if doc, ok := s.templates[r]; ok {
		return doc
	}
	d := s.resman.Demand(r)
	if d.IsEmpty() {
		return nil
	}
	doc := gff.FromBytes(d.Bytes)
	if !doc.Valid() {
		tracer().Errorf("objects: damaged blueprint %s", r)
		return nil
	}
	s.templates[r] = doc
	return doc
}

// LoadCreature instantiates a creature blueprint by resref. On failure the
// object never enters the pool and nil is returned.
func (s *ObjectSystem) LoadCreature(resref string) *objects.Creature {
	doc := s.template(res.MakeResource(resref, res.UTC))
	if doc == nil {
		return nil
	}
	cre := &objects.Creature{}
	h := s.allocLater(cre, func() bool {
		return objects.DeserializeCreature(cre, doc.Toplevel(), objects.ProfileBlueprint)
	})
	if h.IsNil() {
		return nil
	}
	return cre
}

// allocLater runs a deserialization stage machine: parse first, pool on
// success, destroy nothing on failure (the object never entered the
// pool).
func (s *ObjectSystem) allocLater(obj objects.Object, load func() bool) pool.Handle {
	if !load() {
		return pool.Handle{}
	}
	return s.alloc(obj)
}

// LoadCreatureFile reads a creature from a loose file: .utc GFF or the
// .json projection.
func (s *ObjectSystem) LoadCreatureFile(path string) *objects.Creature {
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("objects: cannot read %s: %v", path, err)
		return nil
	}
	cre := &objects.Creature{}
	var ok bool
	if res.HasSuffixFold(path, ".json") {
		ok = objects.CreatureFromJSON(cre, b, objects.ProfileAny)
	} else {
		doc := gff.FromBytes(b)
		ok = doc.Valid() && objects.DeserializeCreature(cre, doc.Toplevel(), objects.ProfileAny)
	}
	if !ok {
		return nil
	}
	if s.alloc(cre).IsNil() {
		return nil
	}
	return cre
}

// LoadPlayer loads a player character from the server vault. The cdkey
// names the vault directory; a mismatching key finds nothing.
func (s *ObjectSystem) LoadPlayer(cdkey, name string) *objects.Player {
	key := playerKey{cdkey: cdkey, name: res.FoldTag(name)}
	if h, ok := s.players[key]; ok {
		if pl, isPlayer := s.Get(h).(*objects.Player); isPlayer {
			return pl
		}
	}
	path := filepath.Join(s.cfg.AliasPath(AliasServerVault), cdkey, name+".bic")
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("objects: no player %s for key %s", name, cdkey)
		return nil
	}
	doc := gff.FromBytes(b)
	if !doc.Valid() {
		return nil
	}
	pl := &objects.Player{CDKey: cdkey}
	if !objects.DeserializeCreature(&pl.Creature, doc.Toplevel(), objects.ProfileAny) {
		return nil
	}
	h := s.alloc(pl)
	s.players[key] = h
	return pl
}

// LoadArea instantiates an area from its ARE and GIT documents, children
// included.
func (s *ObjectSystem) LoadArea(resref res.Resref) *objects.Area {
	areDoc := s.template(res.Resource{Resref: resref, Type: res.ARE})
	if areDoc == nil {
		return nil
	}
	area := &objects.Area{}
	if !area.FromGff(areDoc.Toplevel()) {
		return nil
	}
	if area.Resref.Empty() {
		area.Resref = resref
	}
	s.alloc(area)
	gitDoc := s.template(res.Resource{Resref: resref, Type: res.GIT})
	if gitDoc != nil {
		refs := objects.InstancesFromGff(gitDoc.Toplevel())
		for _, cref := range refs.Creatures {
			if cre := s.LoadCreature(cref.String()); cre != nil {
				area.Creatures = append(area.Creatures, cre.Handle())
			}
		}
		for _, dref := range refs.Doors {
			if d := s.loadDoor(dref); d != nil {
				area.Doors = append(area.Doors, d.Handle())
			}
		}
		for _, wref := range refs.Waypoints {
			if w := s.loadWaypoint(wref); w != nil {
				area.Waypoints = append(area.Waypoints, w.Handle())
			}
		}
	}
	return area
}

func (s *ObjectSystem) loadDoor(resref res.Resref) *objects.Door {
	doc := s.template(res.Resource{Resref: resref, Type: res.UTD})
	if doc == nil {
		return nil
	}
	d := &objects.Door{}
	if !d.FromGff(doc.Toplevel()) {
		return nil
	}
	s.alloc(d)
	return d
}

func (s *ObjectSystem) loadWaypoint(resref res.Resref) *objects.Waypoint {
	doc := s.template(res.Resource{Resref: resref, Type: res.UTW})
	if doc == nil {
		return nil
	}
	w := &objects.Waypoint{}
	if !w.FromGff(doc.Toplevel()) {
		return nil
	}
	s.alloc(w)
	return w
}

// LoadModuleObject builds the module object from a parsed IFO document
// and loads its areas.
func (s *ObjectSystem) LoadModuleObject(ifo *gff.Gff) *objects.Module {
	mod := &objects.Module{}
	if ifo == nil || !mod.FromGff(ifo.Toplevel()) {
		return nil
	}
	s.alloc(mod)
	for _, name := range mod.AreaNames {
		if area := s.LoadArea(name); area != nil {
			mod.Areas = append(mod.Areas, area.Handle())
		} else {
			tracer().Errorf("objects: module references missing area %s", name)
		}
	}
	return mod
}

// LiveCount returns the number of pooled objects.
func (s *ObjectSystem) LiveCount() int {
	return s.pool.Live()
}

// Clear destroys every object and empties the indices; module unload runs
// it.
func (s *ObjectSystem) Clear() {
	s.pool.Clear()
	s.byTag = make(map[string][]pool.Handle)
	s.templates = make(map[res.Resource]*gff.Gff)
	s.players = make(map[playerKey]pool.Handle)
}
