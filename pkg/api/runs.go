// CLAUDE:SUMMARY Bounded store of rendering runs keyed by ULID; each run owns an abbreviation cache pinned to one dictionary snapshot.
package api

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

// ErrRunNotFound is returned for unknown, ended or evicted run ids.
var ErrRunNotFound = errors.New("run not found")

type runEntry struct {
	mu      sync.Mutex
	run     *abbrev.Run
	created time.Time
}

// RunStore keeps the most recently used runs. When full, beginning a new run
// evicts the least recently used one.
type RunStore struct {
	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
	runs      *lru.Cache[string, *runEntry]
	dict      func() *abbrev.Dictionary
}

// NewRunStore creates a store holding at most size runs. dict supplies the
// dictionary snapshot a new run is pinned to.
func NewRunStore(size int, dict func() *abbrev.Dictionary) (*RunStore, error) {
	runs, err := lru.New[string, *runEntry](size)
	if err != nil {
		return nil, fmt.Errorf("run store: %w", err)
	}
	return &RunStore{
		entropy: ulid.Monotonic(rand.Reader, 0),
		runs:    runs,
		dict:    dict,
	}, nil
}

// Begin starts a run against the current dictionary and returns its id.
func (s *RunStore) Begin() string {
	s.entropyMu.Lock()
	id := ulid.MustNew(ulid.Now(), s.entropy).String()
	s.entropyMu.Unlock()

	s.runs.Add(id, &runEntry{run: abbrev.NewRun(s.dict()), created: time.Now()})
	return id
}

// Resolve resolves one field within run id.
func (s *RunStore) Resolve(id string, c abbrev.Category, jurisdiction, key string) (string, bool, error) {
	e, ok := s.runs.Get(id)
	if !ok {
		return "", false, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.run.Resolve(c, jurisdiction, key)
	return v, ok, nil
}

// RunInfo describes a run and everything it recorded.
type RunInfo struct {
	RunID    string          `json:"run_id"`
	Created  time.Time       `json:"created"`
	Entries  int             `json:"entries"`
	Recorded abbrev.Snapshot `json:"recorded"`
}

// Recorded returns a copy of the run's cache.
func (s *RunStore) Recorded(id string) (*RunInfo, error) {
	e, ok := s.runs.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return &RunInfo{
		RunID:    id,
		Created:  e.created,
		Entries:  e.run.Cache().Len(),
		Recorded: e.run.Recorded(),
	}, nil
}

// Reset clears the run's cache; the run keeps its dictionary snapshot.
func (s *RunStore) Reset(id string) error {
	e, ok := s.runs.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	e.mu.Lock()
	e.run.Reset()
	e.mu.Unlock()
	return nil
}

// End discards run id.
func (s *RunStore) End(id string) error {
	if !s.runs.Remove(id) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// Len returns the number of live runs.
func (s *RunStore) Len() int { return s.runs.Len() }
