package strata

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/golang/snappy"

	"github.com/strata-db/strata/internal/encoding"
)

// readDump decompresses a Dump stream and decodes every record in it.
func readDump(t *testing.T, data []byte) []encoding.Record {
	t.Helper()

	raw, err := io.ReadAll(snappy.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	var records []encoding.Record
	for len(raw) > 0 {
		rec, n, err := encoding.DecodeRecord(raw)
		if err != nil {
			t.Fatalf("decode record: %v", err)
		}
		records = append(records, rec)
		raw = raw[n:]
	}
	return records
}

func TestDumpWritesHistoryThenLive(t *testing.T) {
	s := New(Config{HistoryThreshold: 20})
	defer s.Close()

	for ts := int64(10); ts < 25; ts++ {
		if err := s.Insert(Event{Type: "deploy", Timestamp: ts}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := s.Archive("deploy"); err != nil {
		t.Fatalf("archive: %v", err)
	}

	var buf bytes.Buffer
	n, err := s.Dump(&buf)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if n != 15 {
		t.Errorf("record count: got %d, want 15", n)
	}

	records := readDump(t, buf.Bytes())
	if len(records) != 15 {
		t.Fatalf("decoded %d records, want 15", len(records))
	}

	// History records come first, already decoded to raw timestamps.
	want := int64(10)
	for i, rec := range records {
		if rec.Type != "deploy" {
			t.Errorf("record[%d]: type %q", i, rec.Type)
		}
		if rec.Timestamp != want {
			t.Errorf("record[%d]: timestamp %d, want %d", i, rec.Timestamp, want)
		}
		if compressed := want < 20; rec.Compressed != compressed {
			t.Errorf("record[%d]: compressed=%v, want %v", i, rec.Compressed, compressed)
		}
		want++
	}
}

func TestDumpSelectsTypes(t *testing.T) {
	s := New(DefaultConfig())
	defer s.Close()

	for _, typ := range []string{"alpha", "beta"} {
		for ts := int64(100); ts < 103; ts++ {
			if err := s.Insert(Event{Type: typ, Timestamp: ts}); err != nil {
				t.Fatalf("insert: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	n, err := s.Dump(&buf, "beta", "no-such-type")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if n != 3 {
		t.Errorf("record count: got %d, want 3", n)
	}

	for i, rec := range readDump(t, buf.Bytes()) {
		if rec.Type != "beta" {
			t.Errorf("record[%d]: type %q, want beta", i, rec.Type)
		}
	}
}

func TestDumpEmptyStore(t *testing.T) {
	s := New(DefaultConfig())
	defer s.Close()

	var buf bytes.Buffer
	n, err := s.Dump(&buf)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if n != 0 {
		t.Errorf("record count: got %d, want 0", n)
	}
	if records := readDump(t, buf.Bytes()); len(records) != 0 {
		t.Errorf("decoded %d records from empty store", len(records))
	}
}

func TestDumpAfterClose(t *testing.T) {
	s := New(DefaultConfig())
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.Dump(&buf); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
