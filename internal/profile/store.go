// Package profile loads employee profiles from user_data.json.
//
// The file maps an employee name to shift assignment and role. It is
// maintained by the registration dashboard, so the store treats it as
// read-only and re-reads it only when its modification time changes.
package profile

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/shift"
)

// Role is an employee role as stored in user_data.json.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

// Profile describes one registered employee.
type Profile struct {
	Name  string     `json:"name"`
	Shift shift.Kind `json:"shift"`
	Role  Role       `json:"role"`
}

// rawEntry mirrors one value in user_data.json. Shift and role are free
// text there; normalization happens on load.
type rawEntry struct {
	Shift string `json:"shift"`
	Role  string `json:"role"`
}

// Store caches user_data.json keyed by file modification time.
type Store struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	profiles map[string]Profile
	mtime    time.Time
	loaded   bool
}

// NewStore builds a store reading from path. The file does not have to
// exist yet; an absent file behaves as an empty registry.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// ── lookup ──────────────────────────────────────────────────────────

// Lookup returns the profile for name. The original registry was written
// by several tools with inconsistent casing, so the lookup tries the
// exact key, the lower-case key and the title-case key before giving up.
// An unknown name falls back to the morning shift with the employee role.
func (s *Store) Lookup(name string) Profile {
	s.refresh()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range []string{name, strings.ToLower(name), titleCase(name)} {
		if p, ok := s.profiles[key]; ok {
			p.Name = name
			return p
		}
	}
	return Profile{Name: name, Shift: shift.Morning, Role: RoleEmployee}
}

// ShiftFor returns only the assigned shift for name.
func (s *Store) ShiftFor(name string) shift.Kind {
	return s.Lookup(name).Shift
}

// All returns every registered profile, sorted by nothing in particular;
// callers that need ordering sort themselves.
func (s *Store) All() []Profile {
	s.refresh()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Profile, 0, len(s.profiles))
	for name, p := range s.profiles {
		p.Name = name
		out = append(out, p)
	}
	return out
}

// Reload forces a re-read of user_data.json regardless of mtime.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// ── loading ─────────────────────────────────────────────────────────

// refresh re-reads the file when its mtime changed since the last load.
func (s *Store) refresh() {
	info, err := os.Stat(s.path)
	if err != nil {
		s.mu.Lock()
		s.profiles = nil
		s.mtime = time.Time{}
		s.loaded = true
		s.mu.Unlock()
		return
	}

	s.mu.RLock()
	fresh := s.loaded && info.ModTime().Equal(s.mtime)
	s.mu.RUnlock()
	if fresh {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded && info.ModTime().Equal(s.mtime) {
		return
	}
	if err := s.loadLocked(); err != nil {
		s.logger.Warn("profile registry unreadable, keeping previous data",
			zap.String("path", s.path),
			zap.Error(err))
	}
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.profiles = nil
			s.mtime = time.Time{}
			s.loaded = true
			return nil
		}
		return err
	}

	var raw map[string]rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	profiles := make(map[string]Profile, len(raw))
	for name, e := range raw {
		profiles[name] = Profile{
			Shift: normalizeShift(e.Shift),
			Role:  normalizeRole(e.Role),
		}
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return err
	}

	s.profiles = profiles
	s.mtime = info.ModTime()
	s.loaded = true
	return nil
}

func normalizeShift(v string) shift.Kind {
	if k, ok := shift.ParseKind(v); ok {
		return k
	}
	return shift.Morning
}

func normalizeRole(v string) Role {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "supervisor":
		return RoleSupervisor
	case "manager":
		return RoleManager
	default:
		return RoleEmployee
	}
}

// titleCase upper-cases the first letter of each space-separated word,
// matching how the registration tools key multi-word names.
func titleCase(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
