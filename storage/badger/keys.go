package badger

import (
	"encoding/binary"

	"github.com/poiesic/hemeroteca/core"
)

// Key prefixes for different data types
// Key prefixes. Item and feedback keys append the 8-byte big-endian ID.
const (
	itemPrefix       = "itmrec:"
	feedbackPrefix   = "fbkrec:"
	checkpointPrefix = "ckpt:"
)

// makeIDKey generates a key of prefix followed by the big-endian ID,
// so keys under one prefix sort by ID.
func makeIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

func makeItemKey(id core.ID) []byte {
	return makeIDKey(itemPrefix, id)
}

func makeFeedbackKey(id core.ID) []byte {
	return makeIDKey(feedbackPrefix, id)
}

func makeCheckpointKey(processorType string) []byte {
	return []byte(checkpointPrefix + processorType)
}
