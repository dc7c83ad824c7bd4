package strata

import (
	"github.com/strata-db/strata/internal/encoding"
)

// EncodeDelta encodes a raw timestamp as an offset from a reference
// timestamp. History partitions store their keys in this form.
func EncodeDelta(timestamp, reference int64) int64 {
	return encoding.EncodeDelta(timestamp, reference)
}

// DecodeDelta recovers a raw timestamp from its delta-encoded form and the
// reference it was encoded against. It is the exact inverse of EncodeDelta.
func DecodeDelta(encoded, reference int64) int64 {
	return encoding.DecodeDelta(encoded, reference)
}
