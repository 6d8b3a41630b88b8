// Package store persists the task collection and its archive log to a kv.Store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"svns/internal/kv"
	"svns/internal/task"
)

const (
	// TasksKey holds the JSON array of tasks.
	TasksKey = "svns-tasks-v1"

	// ArchiveKey holds the JSON array of archive entries.
	ArchiveKey = "svns-archive-v1"

	// isoMillis matches the ISO-8601 form earlier versions wrote.
	isoMillis = "2006-01-02T15:04:05.000Z"
)

// ErrStorage marks a failure to write to the underlying substrate.
var ErrStorage = errors.New("storage failure")

// Store reads and writes task records.
type Store struct {
	kv     kv.Store
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a Store over the given substrate.
func New(s kv.Store, logger zerolog.Logger) *Store {
	return &Store{kv: s, logger: logger, now: time.Now}
}

var _ task.Persister = (*Store)(nil)

// SetClock replaces the time source used to date archive entries.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Load returns the persisted tasks. A missing, unreadable or malformed
// record yields an empty list; the problem is logged, never returned.
func (s *Store) Load(ctx context.Context) []task.Task {
	raw, found, err := s.kv.Get(ctx, TasksKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load tasks")
		return []task.Task{}
	}
	if !found || raw == "" {
		return []task.Task{}
	}

	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load tasks")
		return []task.Task{}
	}
	if tasks == nil {
		// a literal null
		return []task.Task{}
	}
	return tasks
}

// Save overwrites the persisted collection with tasks.
func (s *Store) Save(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(ctx, TasksKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Archive appends one dated entry holding completed to the archive log.
// If the existing log cannot be read or parsed, the write is abandoned so
// that history is not overwritten; that case is logged and returns nil.
func (s *Store) Archive(ctx context.Context, completed []task.Task) error {
	raw, found, err := s.kv.Get(ctx, ArchiveKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to archive")
		return nil
	}

	var entries []task.ArchiveEntry
	if found && raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			s.logger.Warn().Err(err).Msg("failed to archive")
			return nil
		}
	}

	items := completed
	if items == nil {
		items = []task.Task{}
	}
	entries = append(entries, task.ArchiveEntry{
		Date:  s.now().UTC().Format(isoMillis),
		Items: items,
	})

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := s.kv.Set(ctx, ArchiveKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
