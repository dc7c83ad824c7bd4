package encoding

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_DeltaRoundTrip checks that decoding an encoded timestamp
// recovers the original for any (timestamp, reference) pair, including pairs
// whose difference wraps around the int64 range.
func TestProperty_DeltaRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(x, r), r) == x", prop.ForAll(
		func(timestamp, reference int64) bool {
			return DecodeDelta(EncodeDelta(timestamp, reference), reference) == timestamp
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestProperty_DeltaOrderPreservation checks that encoding against a common
// reference is a monotone shift: later timestamps stay later in encoded form.
// Inputs are drawn from a realistic timestamp range so the shift cannot wrap.
func TestProperty_DeltaOrderPreservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("earlier timestamps encode to smaller deltas", prop.ForAll(
		func(t1, t2, reference int64) bool {
			if t1 == t2 {
				return EncodeDelta(t1, reference) == EncodeDelta(t2, reference)
			}
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			return EncodeDelta(t1, reference) < EncodeDelta(t2, reference)
		},
		gen.Int64Range(-1<<40, 1<<40),
		gen.Int64Range(-1<<40, 1<<40),
		gen.Int64Range(-1<<40, 1<<40),
	))

	properties.TestingRun(t)
}
