package strata

import (
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/strata-db/strata/internal/encoding"
)

// Dump streams a snappy-framed snapshot of the selected types to w: for each
// type, its archived events first with decoded raw timestamps, then its live
// events, all in ascending timestamp order. With no types named, every type
// currently in the store is dumped. Types the store does not hold are
// skipped. It returns the number of records written.
//
// Each record is framed by internal/encoding's record layout, and the whole
// stream is snappy-compressed. The dump is one-way interchange for external
// consumers; the store has no load path and stays volatile.
func (s *Store) Dump(w io.Writer, types ...string) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	if len(types) == 0 {
		types = s.Types()
	}

	sw := snappy.NewBufferedWriter(w)
	var written int
	var buf []byte

	for _, t := range types {
		idx, ok := s.lookup(t)
		if !ok {
			continue
		}
		liveSnap, histSnap, ref, _ := idx.snapshot()

		var werr error
		write := func(rec encoding.Record) bool {
			buf = encoding.AppendRecord(buf[:0], rec)
			if _, err := sw.Write(buf); err != nil {
				werr = err
				return false
			}
			written++
			return true
		}

		histSnap.Scan(func(k int64, e Event) bool {
			return write(encoding.Record{
				Type:       e.Type,
				Timestamp:  encoding.DecodeDelta(k, ref),
				Compressed: true,
			})
		})
		if werr == nil {
			liveSnap.Scan(func(k int64, e Event) bool {
				return write(encoding.Record{Type: e.Type, Timestamp: k})
			})
		}
		if werr != nil {
			_ = sw.Close()
			return written, fmt.Errorf("dump %s: %w", t, werr)
		}
	}

	if err := sw.Close(); err != nil {
		return written, fmt.Errorf("dump: %w", err)
	}
	return written, nil
}
