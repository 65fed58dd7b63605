package kernel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// PathAlias names one of the engine's well-known directories.
type PathAlias uint8

// Path aliases.
const (
	AliasCache PathAlias = iota
	AliasDevelopment
	AliasHak
	AliasModules
	AliasNWSync
	AliasOverride
	AliasPortraits
	AliasSaves
	AliasServerVault
	AliasTemp
	AliasTlk
	aliasCount
)

var aliasDirs = [aliasCount]struct {
	prefix string
	dir    string
}{
	{"CACHE:", "cache"},
	{"DEV:", "development"},
	{"HAK:", "hak"},
	{"MOD:", "modules"},
	{"NWSYNC:", "nwsync"},
	{"OVR:", "override"},
	{"PORTRAITS:", "portraits"},
	{"SAVES:", "saves"},
	{"VAULT:", "servervault"},
	{"TMP:", "tmp"},
	{"TLK:", "tlk"},
}

// Config carries the install and user paths everything else resolves
// against. The environment supplies defaults: NWN_ROOT for the game
// install, NWN_USER for the user directory.
type Config struct {
	Install string `env:"NWN_ROOT"`
	User    string `env:"NWN_USER"`
}

// ConfigFromEnv parses the configuration from the environment.
func ConfigFromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("kernel: parse env: %w", err)
	}
	if c.User == "" {
		c.User = c.Install
	}
	return c, nil
}

// AliasPath returns the directory behind an alias.
func (c Config) AliasPath(a PathAlias) string {
	if a >= aliasCount {
		return ""
	}
	return filepath.Join(c.User, aliasDirs[a].dir)
}

// ResolveAlias expands a path of the form "HAK:file.hak" against the
// alias table. Paths without a known alias prefix pass through unchanged.
func (c Config) ResolveAlias(path string) string {
	for a := PathAlias(0); a < aliasCount; a++ {
		if rest, ok := strings.CutPrefix(path, aliasDirs[a].prefix); ok {
			return filepath.Join(c.AliasPath(a), rest)
		}
	}
	return path
}

// ModulePath resolves a module name to its file under MOD:, trying the
// archive extension first, then a directory of the same name.
func (c Config) ModulePath(name string) string {
	if strings.ContainsAny(name, "/\\.") {
		// Already a path.
		return name
	}
	mod := filepath.Join(c.AliasPath(AliasModules), name+".mod")
	if _, err := os.Stat(mod); err != nil {
		dir := filepath.Join(c.AliasPath(AliasModules), name)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return mod
}
