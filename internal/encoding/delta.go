package encoding

// EncodeDelta encodes a raw timestamp as an offset from a reference timestamp.
// The result is the signed distance between the two; values older than the
// reference encode to negative deltas. Arithmetic is plain 64-bit two's
// complement, so every input round-trips exactly through DecodeDelta.
func EncodeDelta(timestamp, reference int64) int64 {
	return timestamp - reference
}

// DecodeDelta recovers the raw timestamp from a delta-encoded value and the
// reference timestamp it was encoded against.
// DecodeDelta(EncodeDelta(x, r), r) == x for all x and r.
func DecodeDelta(encoded, reference int64) int64 {
	return encoded + reference
}
