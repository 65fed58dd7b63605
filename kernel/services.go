package kernel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okarren/aurora/res"
	"github.com/okarren/aurora/rules"
)

// Profile is a game profile: it knows which rule tables, modifiers and
// effect callbacks a particular game flavour uses, and registers them when
// the services start.
type Profile interface {
	Name() string
	Load(s *Services) error
}

// Services is the process-wide service bundle. Construct one, Start it
// with a profile, and pass it around; the package-level façade wraps a
// single default instance. Running two started bundles in one process is
// not supported.
type Services struct {
	Config Config

	Strings  *StringTable
	Resman   *res.Manager
	TwoDAs   *TwoDACache
	Rules    *rules.Rules
	Scripts  *ParsedScriptCache
	Models   *ModelCache
	Tilesets *TilesetRegistry
	Effects  *EffectSystem
	Objects  *ObjectSystem

	profile Profile
	started bool
}

// NewServices wires an unstarted bundle in dependency order. The script
// parser collaborator may be nil; the script cache then reports every
// script unparsed.
func NewServices(cfg Config, parser ScriptParser) *Services {
	s := &Services{Config: cfg}
	s.Strings = NewStrings()
	s.Resman = res.NewManager()
	s.TwoDAs = NewTwoDACache(s.Resman)
	s.Rules = rules.NewRules(s.TwoDAs)
	s.Scripts = NewParsedScriptCache(s.Resman, parser)
	s.Models = NewModelCache(s.Resman)
	s.Tilesets = NewTilesetRegistry(s.Resman, s.Models)
	s.Effects = NewEffectSystem(s.TwoDAs)
	s.Objects = NewObjectSystem(cfg, s.Resman)
	return s
}

// Start brings the services up in order — strings, resources, rules,
// objects, effects — then loads the profile. This is the toolkit's only
// hard-failure path: an error here means the bundle is unusable.
func (s *Services) Start(profile Profile) error {
	if s.started {
		return fmt.Errorf("kernel: services already started")
	}

	// Strings: the base dialog table, when an install is configured.
	if s.Config.Install != "" {
		dialog := filepath.Join(s.Config.Install, "lang", "en", "data", "dialog.tlk")
		if _, err := os.Stat(dialog); err == nil {
			if !s.Strings.LoadDialogTlk(dialog) {
				return fmt.Errorf("kernel: unable to load strings service")
			}
		}
	}

	// Resources: user override directory shadows everything beneath it.
	if s.Config.User != "" {
		ovr := s.Config.AliasPath(AliasOverride)
		if fi, err := os.Stat(ovr); err == nil && fi.IsDir() {
			if !s.Resman.AddContainer(res.NewDirectory(ovr), true) {
				return fmt.Errorf("kernel: unable to load resources service")
			}
		}
	}

	if profile != nil {
		if err := profile.Load(s); err != nil {
			return fmt.Errorf("kernel: unable to load profile %s: %w", profile.Name(), err)
		}
		s.profile = profile
	}
	s.started = true
	tracer().Infof("kernel: services started")
	return nil
}

// Started reports whether Start completed.
func (s *Services) Started() bool {
	return s.started
}

// Shutdown unloads any module and drops every service's state.
func (s *Services) Shutdown() {
	if !s.started {
		return
	}
	s.UnloadModule()
	s.Rules.Clear()
	s.Effects.Clear()
	s.Strings.Clear()
	s.started = false
	tracer().Infof("kernel: services shut down")
}

// --- Package-level façade ---------------------------------------------------

var defaultServices *Services

// Start creates and starts the default bundle from the environment
// configuration.
func Start(profile Profile) (*Services, error) {
	if defaultServices != nil && defaultServices.started {
		return nil, fmt.Errorf("kernel: default services already started")
	}
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	s := NewServices(cfg, nil)
	if err := s.Start(profile); err != nil {
		return nil, err
	}
	defaultServices = s
	return s, nil
}

// Shutdown stops the default bundle.
func Shutdown() {
	if defaultServices != nil {
		defaultServices.Shutdown()
		defaultServices = nil
	}
}

// Service returns the default bundle, nil before Start.
func Service() *Services {
	return defaultServices
}
