package strata

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// storeMetrics holds the store's internal counters. All fields are atomics;
// the data path never takes a lock to account for an operation.
type storeMetrics struct {
	inserts        atomic.Int64
	overwrites     atomic.Int64
	queries        atomic.Int64
	typeRemovals   atomic.Int64
	archiveRuns    atomic.Int64
	eventsArchived atomic.Int64
	iterRemovals   atomic.Int64
}

// Stats is a point-in-time view of store activity and occupancy.
type Stats struct {
	// Counters accumulated since the store was created.
	Inserts          int64
	Overwrites       int64
	Queries          int64
	TypeRemovals     int64
	ArchiveRuns      int64
	EventsArchived   int64
	IteratorRemovals int64

	// Occupancy at snapshot time, weakly consistent.
	Types         int
	LiveEvents    int
	HistoryEvents int
}

// Stats returns a snapshot of the store's counters and occupancy.
func (s *Store) Stats() Stats {
	st := Stats{
		Inserts:          s.metrics.inserts.Load(),
		Overwrites:       s.metrics.overwrites.Load(),
		Queries:          s.metrics.queries.Load(),
		TypeRemovals:     s.metrics.typeRemovals.Load(),
		ArchiveRuns:      s.metrics.archiveRuns.Load(),
		EventsArchived:   s.metrics.eventsArchived.Load(),
		IteratorRemovals: s.metrics.iterRemovals.Load(),
	}
	s.types.Range(func(_, v any) bool {
		idx := v.(*typeIndex)
		live, history := idx.lens()
		st.Types++
		st.LiveEvents += live
		st.HistoryEvents += history
		return true
	})
	return st
}

// collector adapts a store's Stats to the Prometheus collector interface.
type collector struct {
	store *Store

	inserts        *prometheus.Desc
	overwrites     *prometheus.Desc
	queries        *prometheus.Desc
	typeRemovals   *prometheus.Desc
	archiveRuns    *prometheus.Desc
	eventsArchived *prometheus.Desc
	iterRemovals   *prometheus.Desc
	types          *prometheus.Desc
	liveEvents     *prometheus.Desc
	historyEvents  *prometheus.Desc
}

// Collector returns a prometheus.Collector exposing the store's counters and
// occupancy gauges under the strata_ prefix. The store opens no listener of
// its own; register the collector with your registry and serve it however
// the application exposes metrics.
func (s *Store) Collector() prometheus.Collector {
	return &collector{
		store: s,
		inserts: prometheus.NewDesc("strata_inserts_total",
			"Events inserted into live partitions.", nil, nil),
		overwrites: prometheus.NewDesc("strata_insert_overwrites_total",
			"Inserts that replaced an event at the same type and timestamp.", nil, nil),
		queries: prometheus.NewDesc("strata_queries_total",
			"Range queries served.", nil, nil),
		typeRemovals: prometheus.NewDesc("strata_type_removals_total",
			"Whole-type removals.", nil, nil),
		archiveRuns: prometheus.NewDesc("strata_archive_runs_total",
			"Archival passes executed.", nil, nil),
		eventsArchived: prometheus.NewDesc("strata_events_archived_total",
			"Events moved from live to history partitions.", nil, nil),
		iterRemovals: prometheus.NewDesc("strata_iterator_removals_total",
			"Events deleted through query iterators.", nil, nil),
		types: prometheus.NewDesc("strata_event_types",
			"Event types currently present.", nil, nil),
		liveEvents: prometheus.NewDesc("strata_live_events",
			"Events currently held in live partitions.", nil, nil),
		historyEvents: prometheus.NewDesc("strata_history_events",
			"Events currently held in history partitions.", nil, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inserts
	ch <- c.overwrites
	ch <- c.queries
	ch <- c.typeRemovals
	ch <- c.archiveRuns
	ch <- c.eventsArchived
	ch <- c.iterRemovals
	ch <- c.types
	ch <- c.liveEvents
	ch <- c.historyEvents
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	st := c.store.Stats()
	ch <- prometheus.MustNewConstMetric(c.inserts, prometheus.CounterValue, float64(st.Inserts))
	ch <- prometheus.MustNewConstMetric(c.overwrites, prometheus.CounterValue, float64(st.Overwrites))
	ch <- prometheus.MustNewConstMetric(c.queries, prometheus.CounterValue, float64(st.Queries))
	ch <- prometheus.MustNewConstMetric(c.typeRemovals, prometheus.CounterValue, float64(st.TypeRemovals))
	ch <- prometheus.MustNewConstMetric(c.archiveRuns, prometheus.CounterValue, float64(st.ArchiveRuns))
	ch <- prometheus.MustNewConstMetric(c.eventsArchived, prometheus.CounterValue, float64(st.EventsArchived))
	ch <- prometheus.MustNewConstMetric(c.iterRemovals, prometheus.CounterValue, float64(st.IteratorRemovals))
	ch <- prometheus.MustNewConstMetric(c.types, prometheus.GaugeValue, float64(st.Types))
	ch <- prometheus.MustNewConstMetric(c.liveEvents, prometheus.GaugeValue, float64(st.LiveEvents))
	ch <- prometheus.MustNewConstMetric(c.historyEvents, prometheus.GaugeValue, float64(st.HistoryEvents))
}
