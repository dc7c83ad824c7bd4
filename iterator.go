package strata

import (
	"github.com/tidwall/btree"

	"github.com/strata-db/strata/internal/encoding"
)

// iterPhase tracks where an Iterator's cursor is. Phases only ever move
// forward: notStarted, then history, then live, then exhausted. Closed is
// terminal from anywhere.
type iterPhase uint8

const (
	phaseNotStarted iterPhase = iota
	phaseHistory
	phaseLive
	phaseExhausted
	phaseClosed
)

// Iterator walks one query's time range as a single ascending sequence:
// archived history events first, decoded on read, then live events.
//
// The cursor runs over copy-on-write snapshots taken when the query was
// made, so iteration is weakly consistent: it never fails under concurrent
// store mutation and never revisits an element it has yielded, but mutations
// made after the query may not be reflected. Removals through Remove go to
// the store itself and are visible to later queries.
//
// An Iterator is driven by a single goroutine.
type Iterator struct {
	store *Store
	idx   *typeIndex
	phase iterPhase

	// History cursor. Bounds are in encoded-key space; ref decodes values
	// back to raw timestamps.
	hist      btree.MapIter[int64, Event]
	histStart int64
	histEnd   int64
	useHist   bool
	ref       int64

	// Live cursor, in raw-timestamp space.
	live  btree.MapIter[int64, Event]
	start int64
	end   int64
}

// newIterator snapshots the type's partitions and prepares a history-then-
// live cursor over [start, end). The history leg only exists when the range
// reaches below the store's history threshold and the type has archived
// events; its bounds are the query bounds encoded against the type's
// reference timestamp.
func newIterator(s *Store, idx *typeIndex, start, end int64) *Iterator {
	liveSnap, histSnap, ref, hasRef := idx.snapshot()

	it := &Iterator{
		store: s,
		idx:   idx,
		live:  liveSnap.Iter(),
		start: start,
		end:   end,
		ref:   ref,
	}

	threshold := s.config.HistoryThreshold
	if start < threshold && hasRef && histSnap.Len() > 0 {
		histEnd := end
		if threshold < histEnd {
			histEnd = threshold
		}
		it.useHist = true
		it.hist = histSnap.Iter()
		it.histStart = encoding.EncodeDelta(start, ref)
		it.histEnd = encoding.EncodeDelta(histEnd, ref)
	}
	return it
}

// Next advances to the next event in the merged sequence and reports whether
// the iterator is now positioned on one. Once Next returns false the
// iterator is exhausted for good. A closed iterator reports false.
func (it *Iterator) Next() bool {
	switch it.phase {
	case phaseNotStarted:
		if it.useHist && it.hist.Seek(it.histStart) && it.hist.Key() < it.histEnd {
			it.phase = phaseHistory
			return true
		}
		return it.enterLive()
	case phaseHistory:
		if it.hist.Next() && it.hist.Key() < it.histEnd {
			return true
		}
		return it.enterLive()
	case phaseLive:
		if it.live.Next() && it.live.Key() < it.end {
			return true
		}
		it.phase = phaseExhausted
		return false
	default:
		return false
	}
}

// enterLive seeks the live cursor to the range start.
func (it *Iterator) enterLive() bool {
	if it.live.Seek(it.start) && it.live.Key() < it.end {
		it.phase = phaseLive
		return true
	}
	it.phase = phaseExhausted
	return false
}

// Current returns the event the iterator is positioned on. History-sourced
// events are materialized on each call with the decoded raw timestamp and
// Compressed set; the store's partitions are untouched. Current fails with
// ErrInvalidState before the first Next, after Next has returned false, and
// after Close.
func (it *Iterator) Current() (Event, error) {
	switch it.phase {
	case phaseHistory:
		e := it.hist.Value()
		return Event{
			Type:       e.Type,
			Timestamp:  encoding.DecodeDelta(e.Timestamp, it.ref),
			Compressed: true,
		}, nil
	case phaseLive:
		return it.live.Value(), nil
	case phaseNotStarted:
		return Event{}, newStateError("current", "not started")
	case phaseClosed:
		return Event{}, newStateError("current", "closed")
	default:
		return Event{}, newStateError("current", "exhausted")
	}
}

// Remove deletes the current event from the store partition it came from, so
// later queries no longer see it. The iterator keeps its position: the
// element stays current until the next call to Next. Remove fails with
// ErrInvalidState before the first Next, after Next has returned false, and
// after Close.
func (it *Iterator) Remove() error {
	switch it.phase {
	case phaseHistory:
		if it.idx.deleteHistory(it.hist.Key()) {
			it.store.metrics.iterRemovals.Add(1)
		}
		return nil
	case phaseLive:
		if it.idx.deleteLive(it.live.Key()) {
			it.store.metrics.iterRemovals.Add(1)
		}
		return nil
	case phaseNotStarted:
		return newStateError("remove", "not started")
	case phaseClosed:
		return newStateError("remove", "closed")
	default:
		return newStateError("remove", "exhausted")
	}
}

// Close releases the iterator's snapshots and detaches it from the store.
// Close is idempotent. After Close, Next reports false and Current and
// Remove fail with ErrInvalidState.
func (it *Iterator) Close() error {
	if it.phase == phaseClosed {
		return nil
	}
	it.phase = phaseClosed
	it.store = nil
	it.idx = nil
	it.hist = btree.MapIter[int64, Event]{}
	it.live = btree.MapIter[int64, Event]{}
	return nil
}
