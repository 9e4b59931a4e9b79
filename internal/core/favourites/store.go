// Package favourites keeps the user's favourite station ids in insertion order and
// persists them under one preference key.
package favourites

import (
	"context"
	"strings"
	"sync"
	"time"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
	"weatherview.app/pkg/validation"
)

// PreferenceKey is where the comma separated id list is stored
const PreferenceKey = "favourites"

const writeTimeout = 5 * time.Second

// Store is the in-memory favourite set. Mutations happen on the UI goroutine; a single
// background writer persists the latest state.
type Store struct {
	prefs  ports.PreferenceStore
	logger ports.Logger
	ids    []string

	mutex   sync.Mutex
	pending *string
	waiters []chan struct{}
	lastErr error
	closed  bool

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Open loads the stored ids and starts the writer. A read failure is logged and the
// set starts empty.
func Open(ctx context.Context, prefs ports.PreferenceStore, logger ports.Logger) (*Store, error) {
	if prefs == nil {
		return nil, errors.NewValidationError("preference store is required")
	}
	if logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	s := &Store{
		prefs:  prefs,
		logger: logger,
		ids:    []string{},
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	raw, found, err := prefs.Get(ctx, PreferenceKey)
	switch {
	case err != nil:
		logger.Error("Failed to load favourites", ports.F("error", err.Error()))
	case found:
		s.ids = parse(raw)
	}
	logger.Debug("Favourites loaded", ports.F("count", len(s.ids)))

	go s.run()
	return s, nil
}

// IDs returns a copy of the stored ids in insertion order
func (s *Store) IDs() []string {
	return append([]string{}, s.ids...)
}

// Contains reports whether id is a favourite
func (s *Store) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present
func (s *Store) Add(id string) {
	if id == "" {
		panic("favourites: Add called with empty id")
	}
	if s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
	s.schedule()
}

// Remove drops id. Absent ids are ignored.
func (s *Store) Remove(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
			s.schedule()
			return
		}
	}
}

// Resolve returns the stations for the ids present in known, in stored order.
// Unresolved ids stay stored.
func (s *Store) Resolve(known map[string]models.Station) []models.Station {
	stations := make([]models.Station, 0, len(s.ids))
	for _, id := range s.ids {
		if station, ok := known[id]; ok {
			stations = append(stations, station)
		}
	}
	return stations
}

// Flush waits until every scheduled write has been attempted and returns the error
// of the last attempt, if any.
func (s *Store) Flush(ctx context.Context) error {
	ch := make(chan struct{})

	s.mutex.Lock()
	if s.closed {
		err := s.lastErr
		s.mutex.Unlock()
		return err
	}
	s.waiters = append(s.waiters, ch)
	s.mutex.Unlock()
	s.signal()

	select {
	case <-ch:
	case <-ctx.Done():
		return errors.NewPersistenceError("favourites flush interrupted", ctx.Err())
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastErr
}

// Close writes any pending state and stops the writer. Later mutations stay in memory only.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mutex.Lock()
		s.closed = true
		s.mutex.Unlock()
		close(s.quit)
		<-s.done
	})

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastErr
}

func (s *Store) schedule() {
	value := strings.Join(s.ids, ",")

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		s.logger.Warn("Favourites changed after close, not persisted", ports.F("count", len(s.ids)))
		return
	}
	s.pending = &value
	s.mutex.Unlock()
	s.signal()
}

func (s *Store) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.quit:
			s.drain()
			return
		}
	}
}

// drain writes the pending value until none is left, then releases flush waiters
func (s *Store) drain() {
	for {
		s.mutex.Lock()
		value := s.pending
		s.pending = nil
		if value == nil {
			waiters := s.waiters
			s.waiters = nil
			s.mutex.Unlock()
			for _, ch := range waiters {
				close(ch)
			}
			return
		}
		s.mutex.Unlock()

		err := s.write(*value)

		s.mutex.Lock()
		s.lastErr = err
		s.mutex.Unlock()
	}
}

func (s *Store) write(value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := s.prefs.Put(ctx, PreferenceKey, value); err != nil {
		s.logger.Error("Failed to persist favourites", ports.F("error", err.Error()))
		return err
	}
	return nil
}

func parse(raw string) []string {
	ids := []string{}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		id, ok := validation.TrimAndValidate(part)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
