package strata

// Event represents a single typed occurrence at a point in time. Events are
// immutable values: the store never mutates an inserted event, and archival
// replaces a live event with a newly constructed compressed one.
//
// Two events are the same event iff (Type, Timestamp) match; inserting a
// duplicate pair overwrites the previous event (last write wins).
type Event struct {
	// Type is the event category (e.g., "deploy", "payment.failed").
	// An event with an empty Type is treated as absent and rejected.
	Type string

	// Timestamp is the event time. Live events carry the raw timestamp;
	// history events carry a delta against their type's reference timestamp.
	Timestamp int64

	// Compressed reports whether Timestamp is delta-encoded. It is false for
	// every live event and true for every history event.
	Compressed bool
}
