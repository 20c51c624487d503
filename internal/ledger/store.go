package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store is the append-only per-day ledger on disk.
//
// Reads are defensive and never fail the caller: a missing or unreadable file
// degrades to "no data". Appends are the opposite: an error is surfaced,
// because silently losing an attendance event is unacceptable. Appends to the
// directory are serialized so concurrent recognition sources cannot interleave
// partial rows.
type Store struct {
	dir    string
	logger *zap.Logger

	mu sync.Mutex // serializes appends
}

// NewStore creates a ledger store rooted at dir.
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// PathFor returns the day file path, Attendance_yy_mm_dd.csv.
func (s *Store) PathFor(day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("Attendance_%s.csv", day.Format("06_01_02")))
}

// ReadDay decodes the raw table for a day. A missing or undecodable file is
// not an error: the caller gets a nil table and degrades to an empty state.
func (s *Store) ReadDay(day time.Time) *Table {
	path := s.PathFor(day)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("ledger file unreadable, treating as empty",
				zap.String("path", path), zap.Error(err))
		}
		return nil
	}

	t, err := Decode(data)
	if err != nil {
		s.logger.Warn("ledger file undecodable, treating as empty",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return t
}

// RecordsFor reads, validates and maps a day onto canonical records.
func (s *Store) RecordsFor(day time.Time) []Record {
	return Validate(s.ReadDay(day)).Records()
}

// HasCheckedIn reports whether the employee already has any row today.
// Ledger state is ground truth over any in-memory cache.
func (s *Store) HasCheckedIn(day time.Time, name string) bool {
	return Validate(s.ReadDay(day)).HasName(name)
}

// Append writes exactly one record to the day file, creating it with the
// canonical header when absent. Existing lines are never rewritten or
// reordered.
func (s *Store) Append(day time.Time, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	path := s.PathFor(day)
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(CanonicalHeader); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	if err := w.Write([]string{rec.Name, rec.Time, rec.Date, rec.Shift, rec.Status}); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger row: %w", err)
	}
	return nil
}
