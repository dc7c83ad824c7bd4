// Package testutil provides shared test helpers for strata packages.
package testutil

import (
	"testing"
	"time"
)

// WaitUntil polls cond every few milliseconds until it reports true, failing
// the test if the deadline passes first.
func WaitUntil(t *testing.T, deadline time.Duration, cond func() bool) {
	t.Helper()
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", deadline)
}

// EqualInt64s reports whether a and b hold the same values in the same
// order.
func EqualInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
