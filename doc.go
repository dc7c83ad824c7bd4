// Package strata provides an in-memory, type-partitioned, time-ordered event
// store with concurrent inserts, range queries, and delta-compressed history
// partitions for archived events.
//
// Each event type gets two ordered partitions: a live partition keyed by raw
// timestamp and a history partition keyed by timestamps delta-encoded
// against a per-type reference. Archival moves old live events into history;
// queries stitch both partitions into one ascending sequence and decode
// history transparently as it is read.
//
// # Basic Usage
//
// Create a store and insert events:
//
//	store := strata.New(strata.DefaultConfig())
//	defer store.Close()
//
//	err := store.Insert(strata.Event{
//	    Type:      "deploy",
//	    Timestamp: time.Now().UnixMilli(),
//	})
//
// Query a time range and walk the merged result:
//
//	it, err := store.Query("deploy", start, end)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer it.Close()
//
//	for it.Next() {
//	    e, _ := it.Current()
//	    fmt.Println(e.Timestamp, e.Compressed)
//	}
//
// # Archival
//
// Events with timestamps below Config.HistoryThreshold move to the history
// partition when Archive runs:
//
//	err := store.Archive("deploy")
//
// Setting Config.Archiver.Interval makes the store run archival passes in
// the background for the store's lifetime; an Archiver can also be driven
// directly.
//
// # Features
//
// Core Storage:
//   - Per-type ordered live and history partitions with logarithmic
//     insert, delete, and range lookup
//   - Atomic per-type creation under racing inserts, no global write lock
//   - Delta timestamp encoding against a per-type reference, fixed at
//     first archival
//   - Whole-type removal in one step across live, history, and reference
//     state
//
// Queries:
//   - Merged history-then-live range iteration, ascending, with lazy
//     decoding
//   - Weakly consistent snapshot cursors that tolerate concurrent mutation
//   - In-place removal of the iterator's current element
//
// Operations:
//   - Background archival loop with configurable interval and type list
//   - Activity counters, occupancy gauges, and a Prometheus collector
//   - Snappy-compressed binary snapshot dumps for external consumers
//
// # Configuration
//
// Use [Config] to customize behavior:
//
//	cfg := strata.Config{
//	    HistoryThreshold: time.Now().Add(-24 * time.Hour).UnixMilli(),
//	    Archiver: strata.ArchiverConfig{
//	        Interval: 15 * time.Minute,
//	    },
//	}
//	store := strata.New(cfg)
//
// Or use [DefaultConfig] for sensible defaults, or [LoadConfig] to read a
// YAML file with STRATA_ environment overrides.
//
// The store is volatile by design: nothing persists across Close or process
// exit.
package strata
