package strata

// Archive moves eventType's live events with timestamps below the store's
// history threshold into the history partition, oldest first. The first
// event ever archived for a type fixes the type's reference timestamp;
// every history key is the delta of its raw timestamp against that
// reference, so later passes over the same type append under the original
// origin and may produce negative deltas for events older than it.
//
// Each single move is atomic: no reader observes an event in both partitions
// or in neither. The pass as a whole is not atomic; an interrupted pass
// leaves moved events in history and the rest live, and the next pass picks
// up where it stopped. Archival of one type is intended to run from one
// logical worker at a time; concurrent inserts to the same type during a
// pass get no defined interleaving.
//
// An empty type is rejected with ErrInvalidArgument. A type the store has
// never seen is a no-op.
func (s *Store) Archive(eventType string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if eventType == "" {
		return newArgumentError("archive", "absent type")
	}
	idx, ok := s.lookup(eventType)
	if !ok {
		return nil
	}

	var moved int64
	for idx.archiveOldest(s.config.HistoryThreshold) {
		moved++
	}
	if moved > 0 {
		s.metrics.eventsArchived.Add(moved)
	}
	s.metrics.archiveRuns.Add(1)
	return nil
}
