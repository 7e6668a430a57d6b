package erat

import "github.com/TusharAgarwal123/primesieve/internal/wheel"

// Medium crosses off sieving primes that have only a few multiples per
// segment, using the modulo-210 wheel. Three primes are processed per
// outer iteration: their clear/advance chains are independent, so
// interleaving them lets the processor execute the three chains
// concurrently. That interleave is the hottest loop in the module and its
// shape is deliberate; the trailing loop is the scalar fallback for the
// remainder.
type Medium struct {
	store store
	stop  uint64
}

// NewMedium returns a Medium cross-off for primes up to maxPrime over
// segments of sieveBytes bytes. The bounds keep every rebased multiple
// index below the 2^23 packing limit.
func NewMedium(stop, sieveBytes, maxPrime uint64) (*Medium, error) {
	if sieveBytes > MaxSieveBytes {
		return nil, ErrSieveSize
	}
	if maxPrime > sieveBytes*mediumFactor {
		return nil, ErrMaxPrime
	}
	return &Medium{store: store{maxPrime: maxPrime}, stop: stop}, nil
}

// Add stores prime with its first multiple positioned relative to the
// segment starting at byte segBase.
func (e *Medium) Add(prime, segBase uint64) error {
	mi, wi, ok := firstMultiple(prime, segBase, e.stop, wheel.Modulo210, wheel.Init210[:], wheel.Spokes210)
	if !ok {
		return nil
	}
	return e.store.push(prime, mi, wi)
}

// CrossOff clears every multiple of every stored prime inside seg, then
// rebases each record by len(seg).
func (e *Medium) CrossOff(seg []byte) {
	size := uint64(len(seg))
	primes := e.store.primes

	i := 0
	for ; i+3 <= len(primes); i += 3 {
		sp0, sp1, sp2 := &primes[i], &primes[i+1], &primes[i+2]
		prime0, mi0, wi0 := sp0.Prime(), sp0.MultipleIndex(), sp0.WheelIndex()
		prime1, mi1, wi1 := sp1.Prime(), sp1.MultipleIndex(), sp1.WheelIndex()
		prime2, mi2, wi2 := sp2.Prime(), sp2.MultipleIndex(), sp2.WheelIndex()

		// advance all three while each stays inside the segment,
		// short-circuiting on whichever exhausts first
		for mi0 < size {
			el := &wheel.Wheel210[wi0]
			seg[mi0] &= el.UnsetBit
			mi0 += uint64(el.NextMultipleFactor)*prime0 + uint64(el.Correct)
			wi0 = uint64(el.Next)
			if mi1 >= size {
				break
			}
			el = &wheel.Wheel210[wi1]
			seg[mi1] &= el.UnsetBit
			mi1 += uint64(el.NextMultipleFactor)*prime1 + uint64(el.Correct)
			wi1 = uint64(el.Next)
			if mi2 >= size {
				break
			}
			el = &wheel.Wheel210[wi2]
			seg[mi2] &= el.UnsetBit
			mi2 += uint64(el.NextMultipleFactor)*prime2 + uint64(el.Correct)
			wi2 = uint64(el.Next)
		}

		// drain whichever chains still have multiples inside the segment
		for mi0 < size {
			el := &wheel.Wheel210[wi0]
			seg[mi0] &= el.UnsetBit
			mi0 += uint64(el.NextMultipleFactor)*prime0 + uint64(el.Correct)
			wi0 = uint64(el.Next)
		}
		for mi1 < size {
			el := &wheel.Wheel210[wi1]
			seg[mi1] &= el.UnsetBit
			mi1 += uint64(el.NextMultipleFactor)*prime1 + uint64(el.Correct)
			wi1 = uint64(el.Next)
		}
		for mi2 < size {
			el := &wheel.Wheel210[wi2]
			seg[mi2] &= el.UnsetBit
			mi2 += uint64(el.NextMultipleFactor)*prime2 + uint64(el.Correct)
			wi2 = uint64(el.Next)
		}

		sp0.setIndexes(mi0-size, wi0)
		sp1.setIndexes(mi1-size, wi1)
		sp2.setIndexes(mi2-size, wi2)
	}

	for ; i < len(primes); i++ {
		sp := &primes[i]
		prime, mi, wi := sp.Prime(), sp.MultipleIndex(), sp.WheelIndex()
		for mi < size {
			el := &wheel.Wheel210[wi]
			seg[mi] &= el.UnsetBit
			mi += uint64(el.NextMultipleFactor)*prime + uint64(el.Correct)
			wi = uint64(el.Next)
		}
		sp.setIndexes(mi-size, wi)
	}
}
