package badger

import (
	"encoding/binary"

	"github.com/plantqa/qamatrix/core"
)

// Key prefixes for different data types
const (
	matrixEntryPrefix = "qamx"
	matrixSerialSeq   = "qamxseq"
)

// makeEntryKey generates a key for a matrix entry by serial number.
// The serial is written BigEndian so lexicographic key order matches
// ascending serial order during iteration.
func makeEntryKey(serial core.ConcernID) []byte {
	prefix := matrixEntryPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(serial))
	return buf
}

// entryKeyPrefix returns the iteration prefix covering all matrix entries.
func entryKeyPrefix() []byte {
	return []byte(matrixEntryPrefix + ":")
}
