package kernel

import (
	"sync"

	"github.com/okarren/aurora/i18n"
)

// customStrrefBase flags a strref as referencing the custom (module)
// table rather than the base dialog table.
const customStrrefBase uint32 = 0x01000000

// StringTable resolves string references against the dialog and custom talk
// tables and interns frequently reused tag strings.
type StringTable struct {
	dialog *i18n.Tlk
	custom *i18n.Tlk

	mu       sync.RWMutex
	interned map[string]string
}

// NewStrings creates an empty string service.
func NewStrings() *StringTable {
	return &StringTable{interned: make(map[string]string)}
}

// LoadDialogTlk installs the base dialog table.
func (s *StringTable) LoadDialogTlk(path string) bool {
	t := i18n.LoadTlk(path)
	if !t.Valid() {
		tracer().Errorf("strings: cannot load dialog tlk %s", path)
		return false
	}
	s.dialog = t
	return true
}

// LoadCustomTlk installs the module's custom table.
func (s *StringTable) LoadCustomTlk(path string) bool {
	t := i18n.LoadTlk(path)
	if !t.Valid() {
		tracer().Errorf("strings: cannot load custom tlk %s", path)
		return false
	}
	s.custom = t
	return true
}

// UnloadCustomTlk drops the custom table; module unload runs it.
func (s *StringTable) UnloadCustomTlk() {
	s.custom = nil
}

// Get resolves a strref. References at or above the custom base go to the
// custom table; StrrefNone and misses read "".
func (s *StringTable) Get(strref uint32) string {
	if strref == i18n.StrrefNone {
		return ""
	}
	if strref >= customStrrefBase {
		if s.custom == nil {
			return ""
		}
		return s.custom.Get(strref - customStrrefBase)
	}
	if s.dialog == nil {
		return ""
	}
	return s.dialog.Get(strref)
}

// GetLocString resolves a localized string: an embedded variant wins over
// the table reference.
func (s *StringTable) GetLocString(l i18n.LocString) string {
	if text := l.Get(i18n.LangEnglish, false); text != "" {
		return text
	}
	return s.Get(l.Strref())
}

// Intern returns the canonical copy of a string, storing it on first use.
func (s *StringTable) Intern(str string) string {
	s.mu.RLock()
	if have, ok := s.interned[str]; ok {
		s.mu.RUnlock()
		return have
	}
	s.mu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if have, ok := s.interned[str]; ok {
		return have
	}
	s.interned[str] = str
	return str
}

// GetInterned looks a string up without storing it.
func (s *StringTable) GetInterned(str string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	have, ok := s.interned[str]
	return have, ok
}

// Clear drops the custom table and the intern pool.
func (s *StringTable) Clear() {
	s.custom = nil
	s.mu.Lock()
	s.interned = make(map[string]string)
	s.mu.Unlock()
}
