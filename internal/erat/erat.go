package erat

import (
	"math/bits"

	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

// firstMultiple locates the first multiple of prime that must be crossed
// off at or beyond the segment whose first byte has global index segBase:
// the smallest multiple >= max(prime^2, segment start) whose cofactor
// survives the wheel. It returns the multiple's byte offset relative to
// segBase and the initial wheel index. ok is false when that multiple
// lies beyond stop, meaning the prime never strikes the range.
func firstMultiple(prime, segBase, stop uint64, modulo uint64, inits []wheel.Init, spokes uint64) (mi, wi uint64, ok bool) {
	low := segBase*wheel.NumbersPerByte + 7
	square := prime * prime

	var multiple, quotient uint64
	if low <= square {
		multiple, quotient = square, prime
	} else {
		quotient = low / prime
		if low%prime != 0 {
			quotient++
		}
		hi, lo := bits.Mul64(prime, quotient)
		if hi != 0 {
			return 0, 0, false
		}
		multiple = lo
	}
	if multiple > stop {
		return 0, 0, false
	}

	in := inits[quotient%modulo]
	if f := uint64(in.NextMultipleFactor); f != 0 {
		add := prime * f
		if add > stop-multiple {
			return 0, 0, false
		}
		multiple += add
	}

	mi = wheel.ByteIndex(multiple) - segBase
	wi = wheel.Class(prime)*spokes + uint64(in.WheelIndex)
	return mi, wi, true
}
