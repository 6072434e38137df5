package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ankileveling/companion/internal/config"
	"github.com/ankileveling/companion/internal/data"
	"go.uber.org/zap"
)

var (
	// ErrNotFound marks a data file that does not exist. It matches
	// os.ErrNotExist as well.
	ErrNotFound = errors.New("data file not found")
	// ErrNoData marks an export of a table that holds nothing.
	ErrNoData = errors.New("no data")
)

// Table names a data set held by the store.
type Table string

const (
	TableClasses    Table = "classes"
	TableMonsters   Table = "monsters"
	TableCharacters Table = "characters"
)

// LoadError is a failed load of one table file.
type LoadError struct {
	Table Table
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Table, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets a missing file match ErrNotFound.
func (e *LoadError) Is(target error) bool {
	return target == ErrNotFound && errors.Is(e.Err, os.ErrNotExist)
}

// Snapshot is the store contents at one point in time. Snapshots are
// never modified once published.
type Snapshot struct {
	Classes    *data.ClassTable
	Monsters   *data.MonsterTable
	Roster     *data.Roster
	ClassesAt  time.Time
	MonstersAt time.Time
	RosterAt   time.Time
}

// Store owns the reference data and the character roster. Readers get a
// consistent snapshot; loads replace one table at a time and leave the
// previous contents in place on failure.
type Store struct {
	paths config.DataConfig
	log   *zap.Logger

	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[Snapshot]
}

// New returns a store with empty tables. Nothing is read until a Load call.
func New(paths config.DataConfig, log *zap.Logger) *Store {
	s := &Store{paths: paths, log: log}
	s.snap.Store(&Snapshot{
		Classes:  data.NewClassTable(nil),
		Monsters: data.NewMonsterTable(nil),
		Roster:   data.NewRoster(nil),
	})
	return s
}

// Snapshot returns the current contents.
func (s *Store) Snapshot() *Snapshot { return s.snap.Load() }

// Classes returns the current class table.
func (s *Store) Classes() *data.ClassTable { return s.snap.Load().Classes }

// Monsters returns the current bestiary.
func (s *Store) Monsters() *data.MonsterTable { return s.snap.Load().Monsters }

// Roster returns the current character roster.
func (s *Store) Roster() *data.Roster { return s.snap.Load().Roster }

// Path returns the file backing table.
func (s *Store) Path(table Table) string {
	switch table {
	case TableClasses:
		return s.paths.ClassesPath()
	case TableMonsters:
		return s.paths.MonstersPath()
	case TableCharacters:
		return s.paths.CharactersPath()
	}
	return ""
}

// FileName returns the base name of the file backing table.
func (s *Store) FileName(table Table) string {
	return filepath.Base(s.Path(table))
}

// LoadClasses reloads the class table from disk.
func (s *Store) LoadClasses() error {
	path := s.Path(TableClasses)
	t, err := data.LoadClassTable(path)
	if err != nil {
		return s.loadFailed(TableClasses, path, err)
	}
	s.swap(func(next *Snapshot) {
		next.Classes = t
		next.ClassesAt = time.Now()
	})
	s.log.Info("classes loaded", zap.String("path", path), zap.Int("count", t.Count()))
	return nil
}

// LoadMonsters reloads the bestiary from disk.
func (s *Store) LoadMonsters() error {
	path := s.Path(TableMonsters)
	t, err := data.LoadMonsterTable(path)
	if err != nil {
		return s.loadFailed(TableMonsters, path, err)
	}
	s.swap(func(next *Snapshot) {
		next.Monsters = t
		next.MonstersAt = time.Now()
	})
	s.log.Info("monsters loaded", zap.String("path", path), zap.Int("count", t.Count()))
	return nil
}

// LoadCharacters reloads the character roster from disk.
func (s *Store) LoadCharacters() error {
	path := s.Path(TableCharacters)
	r, err := data.LoadRoster(path)
	if err != nil {
		return s.loadFailed(TableCharacters, path, err)
	}
	s.swap(func(next *Snapshot) {
		next.Roster = r
		next.RosterAt = time.Now()
	})
	s.log.Info("characters loaded", zap.String("path", path), zap.Int("count", r.Count()))
	return nil
}

// Load reloads one table by name.
func (s *Store) Load(table Table) error {
	switch table {
	case TableClasses:
		return s.LoadClasses()
	case TableMonsters:
		return s.LoadMonsters()
	case TableCharacters:
		return s.LoadCharacters()
	}
	return fmt.Errorf("unknown table %q", table)
}

// Report is the outcome of ReloadAll, one error per table (nil on success).
type Report struct {
	Classes    error
	Monsters   error
	Characters error
}

// OK reports whether the reference data (classes and monsters) reloaded.
func (r Report) OK() bool {
	return r.Classes == nil && r.Monsters == nil
}

// ReloadAll reloads every table. A failing table does not stop the others.
func (s *Store) ReloadAll() Report {
	return Report{
		Classes:    s.LoadClasses(),
		Monsters:   s.LoadMonsters(),
		Characters: s.LoadCharacters(),
	}
}

// ExportClasses writes the current class table to its file and returns
// the path written.
func (s *Store) ExportClasses() (string, error) {
	t := s.Classes()
	if t.Empty() {
		return "", fmt.Errorf("export classes: %w", ErrNoData)
	}
	return s.export(TableClasses, t.File())
}

// ExportMonsters writes the current bestiary to its file and returns the
// path written.
func (s *Store) ExportMonsters() (string, error) {
	t := s.Monsters()
	if t.Empty() {
		return "", fmt.Errorf("export monsters: %w", ErrNoData)
	}
	return s.export(TableMonsters, t.File())
}

func (s *Store) export(table Table, v any) (string, error) {
	path := s.Path(table)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := data.Write(path, v); err != nil {
		s.log.Warn("export failed", zap.String("table", string(table)), zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("export %s: %w", table, err)
	}
	s.log.Info("exported", zap.String("table", string(table)), zap.String("path", path))
	return path, nil
}

// swap publishes a copy of the current snapshot with edit applied.
func (s *Store) swap(edit func(next *Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *s.snap.Load()
	edit(&next)
	s.snap.Store(&next)
}

func (s *Store) loadFailed(table Table, path string, err error) error {
	s.log.Warn("load failed", zap.String("table", string(table)), zap.String("path", path), zap.Error(err))
	return &LoadError{Table: table, Path: path, Err: err}
}
