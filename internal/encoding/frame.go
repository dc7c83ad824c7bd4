package encoding

import (
	"encoding/binary"
	"errors"
)

// Record is the framed wire form of a single event in a dump stream.
type Record struct {
	Type       string
	Timestamp  int64
	Compressed bool
}

// AppendRecord appends the framed binary form of rec to dst and returns the
// extended slice. The layout is a uvarint type length, the type bytes, the
// timestamp as a little-endian uint64, and a one-byte compression flag.
func AppendRecord(dst []byte, rec Record) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(rec.Type)))
	dst = append(dst, rec.Type...)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(rec.Timestamp))
	if rec.Compressed {
		dst = append(dst, 1)
	} else {
		dst = append(dst, 0)
	}
	return dst
}

// DecodeRecord decodes one framed record from the front of data.
// It returns the record and the number of bytes consumed.
func DecodeRecord(data []byte) (Record, int, error) {
	typeLen, n := binary.Uvarint(data)
	if n <= 0 {
		return Record{}, 0, errors.New("frame: bad type length")
	}
	end := n + int(typeLen)
	if end < n || end+9 > len(data) {
		return Record{}, 0, errors.New("frame: data too short")
	}
	rec := Record{
		Type:       string(data[n:end]),
		Timestamp:  int64(binary.LittleEndian.Uint64(data[end : end+8])),
		Compressed: data[end+8] != 0,
	}
	return rec, end + 9, nil
}
