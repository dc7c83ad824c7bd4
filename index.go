package strata

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/strata-db/strata/internal/encoding"
)

// typeIndex bundles everything the store keeps for one event type: the live
// partition, the history partition, and the reference timestamp history keys
// are encoded against. Bundling the three behind one entry keeps RemoveAll a
// single map delete, so no reader can observe a type with only part of its
// state removed.
//
// The mutex guards all fields. Partitions are ordered maps with
// copy-on-write snapshots; readers take an O(1) snapshot under the lock and
// iterate it afterwards without blocking writers.
type typeIndex struct {
	mu      sync.Mutex
	live    *btree.Map[int64, Event]
	history *btree.Map[int64, Event]
	ref     int64
	hasRef  bool
}

func newTypeIndex() *typeIndex {
	return &typeIndex{
		live:    new(btree.Map[int64, Event]),
		history: new(btree.Map[int64, Event]),
	}
}

// insertLive stores e in the live partition, overwriting any event at the
// same timestamp. It reports whether an existing event was replaced.
func (ti *typeIndex) insertLive(e Event) bool {
	ti.mu.Lock()
	_, replaced := ti.live.Set(e.Timestamp, e)
	ti.mu.Unlock()
	return replaced
}

// snapshot returns copy-on-write snapshots of both partitions together with
// the reference timestamp, all consistent with a single instant.
func (ti *typeIndex) snapshot() (live, history *btree.Map[int64, Event], ref int64, hasRef bool) {
	ti.mu.Lock()
	live = ti.live.Copy()
	history = ti.history.Copy()
	ref = ti.ref
	hasRef = ti.hasRef
	ti.mu.Unlock()
	return live, history, ref, hasRef
}

// reference returns the type's history encoding origin, if one is fixed.
func (ti *typeIndex) reference() (int64, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.ref, ti.hasRef
}

// lens returns the current sizes of both partitions.
func (ti *typeIndex) lens() (live, history int) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.live.Len(), ti.history.Len()
}

// deleteLive removes the live event keyed by the raw timestamp, if present.
func (ti *typeIndex) deleteLive(timestamp int64) bool {
	ti.mu.Lock()
	_, ok := ti.live.Delete(timestamp)
	ti.mu.Unlock()
	return ok
}

// deleteHistory removes the history event keyed by the encoded timestamp, if
// present.
func (ti *typeIndex) deleteHistory(encoded int64) bool {
	ti.mu.Lock()
	_, ok := ti.history.Delete(encoded)
	ti.mu.Unlock()
	return ok
}

// archiveOldest moves the oldest live event into history if its timestamp is
// below threshold, reporting whether a move happened. The first event ever
// archived for the type fixes the reference timestamp. Delete and insert
// happen under one lock hold, so the event is never visible in both
// partitions or in neither.
func (ti *typeIndex) archiveOldest(threshold int64) bool {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	timestamp, e, ok := ti.live.Min()
	if !ok || timestamp >= threshold {
		return false
	}
	if !ti.hasRef {
		ti.ref = timestamp
		ti.hasRef = true
	}
	encoded := encoding.EncodeDelta(timestamp, ti.ref)
	ti.live.Delete(timestamp)
	ti.history.Set(encoded, Event{Type: e.Type, Timestamp: encoded, Compressed: true})
	return true
}
