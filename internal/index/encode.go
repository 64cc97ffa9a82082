package index

import "encoding/binary"

// Date keys sort the way listings read: newest first, ties by ascending
// identifier. bbolt iterates keys ascending, so the timestamp is stored
// bit-inverted.
//
// key = invTime(8) + 0x00 + id
func makeDateKey(unixNano int64, id string) []byte {
	buf := make([]byte, 0, 8+1+len(id))
	buf = binary.BigEndian.AppendUint64(buf, ^uint64(unixNano))
	buf = append(buf, 0x00)
	return append(buf, id...)
}
