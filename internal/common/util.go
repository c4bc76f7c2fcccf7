package common

import (
	"crypto/rand"
	"time"
)

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system randomness source fails.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// WipeByteArray overwrites the slice with zeros. Used to scrub passphrases
// and derived keys once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// UnixMilli returns the current wall-clock time in milliseconds since the
// Unix epoch, the timestamp unit used by proof records.
func UnixMilli() int64 {
	return time.Now().UnixMilli()
}
