// Package encoding provides the codecs behind strata's storage and dump
// formats:
//   - Delta: reference-relative timestamp encoding used by history partitions
//   - Record: the framed binary layout of events in dump streams
package encoding
