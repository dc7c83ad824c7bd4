package strata

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// Store is an in-memory, type-partitioned, time-ordered event store. Events
// live in per-type ordered partitions: a live partition keyed by raw
// timestamp and a history partition keyed by delta-encoded timestamp, fed by
// Archive. Insert, Query, RemoveAll, and Archive are safe for arbitrary
// concurrent callers; unrelated types never contend on a shared lock.
//
// The store is volatile. Nothing survives Close or process exit; Dump exists
// for one-way interchange, not durability.
type Store struct {
	config Config
	logger *slog.Logger

	// types maps event type to *typeIndex. Entries are created atomically on
	// first insert and removed only by RemoveAll.
	types sync.Map

	metrics  storeMetrics
	archiver *Archiver
	closed   atomic.Bool
}

// New creates a store with the given configuration. If
// cfg.Archiver.Interval is positive, a background archiver starts with the
// store and stops at Close.
func New(cfg Config) *Store {
	cfg.normalize()
	s := &Store{
		config: cfg,
		logger: cfg.Logger,
	}
	if cfg.Archiver.Interval > 0 {
		s.archiver = NewArchiver(s, cfg.Archiver)
		_ = s.archiver.Start(context.Background())
	}
	return s
}

// Close marks the store closed and stops the background archiver, if one is
// running. Operations after Close return ErrClosed. Close is idempotent.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.archiver != nil {
		_ = s.archiver.Stop()
	}
	s.logger.Debug("store closed")
	return nil
}

// Insert stores e in its type's live partition, creating the partition on
// first use. Inserting at an occupied (Type, Timestamp) overwrites the prior
// event; last write wins. An event with an empty Type is treated as absent
// and rejected with ErrInvalidArgument.
func (s *Store) Insert(e Event) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if e.Type == "" {
		return newArgumentError("insert", "absent event")
	}

	// Live events are uncompressed by definition.
	e.Compressed = false

	if s.indexFor(e.Type).insertLive(e) {
		s.metrics.overwrites.Add(1)
	}
	s.metrics.inserts.Add(1)
	return nil
}

// RemoveAll drops every trace of eventType in one step: its live partition,
// its history partition, and its reference timestamp. No concurrent query
// can observe the type partially removed. An empty type is rejected with
// ErrInvalidArgument; a type the store has never seen is a no-op.
func (s *Store) RemoveAll(eventType string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if eventType == "" {
		return newArgumentError("remove all", "absent type")
	}
	if _, ok := s.types.LoadAndDelete(eventType); ok {
		s.metrics.typeRemovals.Add(1)
	}
	return nil
}

// Query returns an iterator over eventType's events with timestamps in
// [start, end): archived history first, then live, both in ascending raw
// timestamp order. History elements are decoded lazily as the iterator
// reads them.
//
// Query fails with ErrInvalidArgument when eventType is empty, when start is
// not before end, or when the store holds no partition for eventType at all.
// The returned iterator works off a snapshot taken now and should be closed
// when done.
func (s *Store) Query(eventType string, start, end int64) (*Iterator, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if eventType == "" {
		return nil, newArgumentError("query", "absent type")
	}
	if start >= end {
		return nil, newArgumentError("query", fmt.Sprintf("start %d not before end %d", start, end))
	}
	idx, ok := s.lookup(eventType)
	if !ok {
		return nil, newArgumentError("query", "unknown type "+eventType)
	}

	s.metrics.queries.Add(1)
	return newIterator(s, idx, start, end), nil
}

// indexFor returns the type's index, creating it atomically on first use.
// Racing inserts of a previously unseen type observe the same index.
func (s *Store) indexFor(eventType string) *typeIndex {
	if v, ok := s.types.Load(eventType); ok {
		return v.(*typeIndex)
	}
	v, _ := s.types.LoadOrStore(eventType, newTypeIndex())
	return v.(*typeIndex)
}

// lookup returns the type's index without creating one.
func (s *Store) lookup(eventType string) (*typeIndex, bool) {
	v, ok := s.types.Load(eventType)
	if !ok {
		return nil, false
	}
	return v.(*typeIndex), true
}

// HistoryThreshold returns the archival boundary the store was configured
// with.
func (s *Store) HistoryThreshold() int64 {
	return s.config.HistoryThreshold
}

// Types returns the event types currently present in the store, sorted.
// The listing is weakly consistent with concurrent inserts and removals.
func (s *Store) Types() []string {
	var out []string
	s.types.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	sort.Strings(out)
	return out
}

// LiveSnapshot returns eventType's live events in ascending timestamp
// order, or nil for an unknown type. The slice is a weakly consistent
// point-in-time copy; mutating it does not affect the store.
func (s *Store) LiveSnapshot(eventType string) []Event {
	idx, ok := s.lookup(eventType)
	if !ok {
		return nil
	}
	live, _, _, _ := idx.snapshot()
	out := make([]Event, 0, live.Len())
	live.Scan(func(_ int64, e Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

// HistorySnapshot returns eventType's archived events in stored order, or
// nil for an unknown type. Timestamps are returned exactly as stored, still
// delta-encoded; decode them with DecodeDelta against ReferenceTimestamp.
func (s *Store) HistorySnapshot(eventType string) []Event {
	idx, ok := s.lookup(eventType)
	if !ok {
		return nil
	}
	_, history, _, _ := idx.snapshot()
	out := make([]Event, 0, history.Len())
	history.Scan(func(_ int64, e Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

// ReferenceTimestamp returns the encoding origin of eventType's history and
// whether one has been fixed yet. The origin is adopted from the first event
// ever archived for the type and survives until RemoveAll.
func (s *Store) ReferenceTimestamp(eventType string) (int64, bool) {
	idx, ok := s.lookup(eventType)
	if !ok {
		return 0, false
	}
	return idx.reference()
}

// LiveLen returns the number of live events held for eventType.
func (s *Store) LiveLen(eventType string) int {
	idx, ok := s.lookup(eventType)
	if !ok {
		return 0
	}
	live, _ := idx.lens()
	return live
}

// HistoryLen returns the number of archived events held for eventType.
func (s *Store) HistoryLen(eventType string) int {
	idx, ok := s.lookup(eventType)
	if !ok {
		return 0
	}
	_, history := idx.lens()
	return history
}
