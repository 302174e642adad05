package table

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrNoTable is returned by store accessors before any table has been loaded.
var ErrNoTable = errors.New("no table loaded")

// Store holds the active session's table together with its derived
// classification and a memoization cache for pure results computed from it.
// Loading a new table replaces the snapshot and drops the cache; readers that
// obtained the previous snapshot keep working on it unaffected.
type Store struct {
	mu        sync.RWMutex
	sessionID string
	logger    *slog.Logger

	table       *Table
	class       Classification
	source      string
	fingerprint string
	memo        map[string]interface{}
}

// NewStore creates an empty session store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sessionID: uuid.New().String(),
		logger:    logger,
		memo:      make(map[string]interface{}),
	}
}

// SessionID returns the session identifier.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Load replaces the current table. The classification is recomputed and every
// memoized result is invalidated. A nil table is rejected so that a failed
// ingestion can never clear previously loaded data by accident.
func (s *Store) Load(t *Table, source string) error {
	if t == nil {
		return errors.New("refusing to load a nil table")
	}
	class := t.Classify()
	fp := t.Fingerprint()

	s.mu.Lock()
	s.table = t
	s.class = class
	s.source = source
	s.fingerprint = fp
	s.memo = make(map[string]interface{})
	s.mu.Unlock()

	s.logger.Info("table loaded",
		slog.String("session_id", s.sessionID),
		slog.String("source", source),
		slog.Int("rows", t.NumRows()),
		slog.Int("cols", t.NumCols()),
	)
	return nil
}

// Current returns the active table snapshot and its source name.
func (s *Store) Current() (*Table, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, "", ErrNoTable
	}
	return s.table, s.source, nil
}

// Classification returns the derived classification of the active table.
func (s *Store) Classification() (Classification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return Classification{}, ErrNoTable
	}
	return s.class, nil
}

// Memo runs compute against the current table, caching its result under the
// table fingerprint plus the operation name and parameter string. Identical
// repeat calls return the cached value; Load drops all entries. Errors are
// never cached.
func (s *Store) Memo(op, params string, compute func(t *Table) (interface{}, error)) (interface{}, error) {
	s.mu.RLock()
	t := s.table
	key := s.fingerprint + "|" + op + "|" + params
	if t != nil {
		if v, ok := s.memo[key]; ok {
			s.mu.RUnlock()
			return v, nil
		}
	}
	s.mu.RUnlock()

	if t == nil {
		return nil, ErrNoTable
	}
	v, err := compute(t)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// A Load may have swapped the table while computing; only cache results
	// that still belong to the current snapshot.
	if s.table == t {
		s.memo[key] = v
	}
	s.mu.Unlock()
	return v, nil
}
