package otp

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

const CodeLength = 6

// Generate returns a zero-padded 6-digit code drawn uniformly from
// 000000-999999 using the system CSPRNG. Rejection sampling keeps the
// distribution uniform across the modulus.
func Generate() string {
	const bound = 1000000
	// largest multiple of bound below 2^32
	const limit = (1 << 32) / bound * bound
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("otp: read random source: %v", err))
		}
		v := binary.BigEndian.Uint32(buf[:])
		if v < limit {
			return fmt.Sprintf("%06d", v%bound)
		}
	}
}
