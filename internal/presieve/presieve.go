// Package presieve eliminates the multiples of the primes 7, 11, 13, 17
// and 19 from sieve segments by copying a precomputed periodic pattern
// instead of crossing them off one by one. Together with the 30-numbers-
// per-byte layout (which removes 2, 3 and 5 structurally) this leaves the
// cross-off strategies with sieving primes >= 23 only.
package presieve

import (
	"sync"

	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

// primes are the pre-sieved primes. The pattern repeats every
// 7*11*13*17*19 bytes because each prime p clears bits with a byte period
// of exactly p.
var primes = [5]uint64{7, 11, 13, 17, 19}

// PatternBytes is the pattern period: 7*11*13*17*19 = 323323 bytes,
// roughly 316 KiB built once per process.
const PatternBytes = 7 * 11 * 13 * 17 * 19

// firstByteBits are the bits of global byte 0 holding the pre-sieved
// primes themselves (7, 11, 13, 17, 19 at bits 0..4). The pattern clears
// them like any other multiple, so Apply restores them for the segment
// that covers the start of the number line.
const firstByteBits = 0x1f

var (
	once    sync.Once
	pattern []byte
)

func build() {
	pattern = make([]byte, PatternBytes)
	for i := range pattern {
		pattern[i] = 0xff
	}
	// last value owning a bit in the pattern
	limit := uint64(PatternBytes-1)*wheel.NumbersPerByte + 31
	for _, p := range primes {
		for f := uint64(1); p*f <= limit; f += 2 {
			if f%3 == 0 || f%5 == 0 {
				continue
			}
			m := p * f
			pattern[wheel.ByteIndex(m)] &^= 1 << uint(wheel.BitPos(m))
		}
	}
}

// Apply overwrites seg with the pre-sieve pattern for the segment whose
// first byte has global index base.
func Apply(seg []byte, base uint64) {
	once.Do(build)
	off := int(base % PatternBytes)
	n := copy(seg, pattern[off:])
	for n < len(seg) {
		n += copy(seg[n:], pattern)
	}
	if base == 0 {
		seg[0] |= firstByteBits
	}
}
