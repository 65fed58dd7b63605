package kernel

import (
	"fmt"
	"os"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/res"
)

// LoadModule resolves a module by name or path and brings it up: the
// module container is mounted, the IFO parsed, hak dependencies and the
// optional NWSync manifest mounted, the custom talk table loaded, and the
// module's areas instantiated.
func (s *Services) LoadModule(name string, manifest *res.Manifest) (*objects.Module, error) {
	path := s.Config.ResolveAlias(name)
	path = s.Config.ModulePath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("kernel: module %s not found: %w", name, err)
	}
	if _, err := s.Resman.MountModule(path); err != nil {
		return nil, err
	}

	ifoData := s.Resman.Demand(res.MakeResource("module", res.IFO))
	if ifoData.IsEmpty() {
		s.Resman.UnloadModule()
		return nil, fmt.Errorf("kernel: module %s has no module.ifo", name)
	}
	ifo := gff.FromBytes(ifoData.Bytes)
	if !ifo.Valid() {
		s.Resman.UnloadModule()
		return nil, fmt.Errorf("kernel: module %s has a damaged module.ifo", name)
	}

	// Mount dependencies before any object load so their contents shadow
	// the base stack: haks in list order, then the sync manifest.
	var header objects.Module
	header.FromGff(ifo.Toplevel())
	for _, hak := range header.Haks {
		hakPath := s.Config.ResolveAlias("HAK:" + hak + ".hak")
		c := res.NewErf(hakPath)
		if !s.Resman.MountModuleContainer(c) {
			tracer().Errorf("kernel: cannot mount hak %s", hak)
		}
	}
	if manifest != nil {
		if !s.Resman.MountModuleContainer(manifest) {
			tracer().Errorf("kernel: cannot mount manifest %s", manifest.Name())
		}
	}
	if header.CustomTlk != "" {
		tlkPath := s.Config.ResolveAlias("TLK:" + header.CustomTlk + ".tlk")
		if !s.Strings.LoadCustomTlk(tlkPath) {
			tracer().Errorf("kernel: cannot load custom tlk %s", header.CustomTlk)
		}
	}

	mod := s.Objects.LoadModuleObject(ifo)
	if mod == nil {
		s.Resman.UnloadModule()
		return nil, fmt.Errorf("kernel: cannot build module object for %s", name)
	}
	tracer().Infof("kernel: loaded module %s (%d areas)", name, mod.AreaCount())
	return mod, nil
}

// UnloadModule tears the current module down and invalidates every cache
// wholesale.
func (s *Services) UnloadModule() {
	s.Objects.Clear()
	s.TwoDAs.Clear()
	s.Scripts.Clear()
	s.Tilesets.Clear()
	s.Models.Clear()
	s.Rules.ClearTables()
	s.Strings.UnloadCustomTlk()
	s.Resman.UnloadModule()
}
