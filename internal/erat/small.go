package erat

import "github.com/TusharAgarwal123/primesieve/internal/wheel"

// Small crosses off sieving primes that have many multiples per segment.
// It runs on the modulo-30 wheel and hoists one full wheel rotation per
// prime: eight bit clears at fixed byte offsets, after which the position
// advances by exactly the prime's value. The hoisted loop walks the
// segment sequentially, which is what makes this the fastest strategy for
// high-multiplicity primes.
type Small struct {
	store store
	stop  uint64
}

// NewSmall returns a Small cross-off for primes up to maxPrime over
// segments of sieveBytes bytes.
func NewSmall(stop, sieveBytes, maxPrime uint64) (*Small, error) {
	if sieveBytes > MaxSieveBytes {
		return nil, ErrSieveSize
	}
	if maxPrime > sieveBytes*mediumFactor {
		return nil, ErrMaxPrime
	}
	return &Small{store: store{maxPrime: maxPrime}, stop: stop}, nil
}

// Add stores prime with its first multiple positioned relative to the
// segment starting at byte segBase. Primes whose first multiple lies
// beyond the range's stop are dropped.
func (e *Small) Add(prime, segBase uint64) error {
	mi, wi, ok := firstMultiple(prime, segBase, e.stop, wheel.Modulo30, wheel.Init30[:], wheel.Spokes30)
	if !ok {
		return nil
	}
	return e.store.push(prime, mi, wi)
}

// CrossOff clears every multiple of every stored prime inside seg, then
// rebases each record by len(seg) so it is ready for the next segment.
func (e *Small) CrossOff(seg []byte) {
	size := uint64(len(seg))
	for i := range e.store.primes {
		sp := &e.store.primes[i]
		prime := sp.Prime()
		mi := sp.MultipleIndex()
		wi := sp.WheelIndex()

		// one full rotation: 8 clears at fixed offsets spanning exactly
		// the prime's value in bytes
		var offs [8]uint64
		var masks [8]uint8
		rot, w := uint64(0), wi
		for k := 0; k < 8; k++ {
			el := &wheel.Wheel30[w]
			offs[k], masks[k] = rot, el.UnsetBit
			rot += uint64(el.NextMultipleFactor)*prime + uint64(el.Correct)
			w = uint64(el.Next)
		}

		for mi+rot <= size {
			seg[mi+offs[0]] &= masks[0]
			seg[mi+offs[1]] &= masks[1]
			seg[mi+offs[2]] &= masks[2]
			seg[mi+offs[3]] &= masks[3]
			seg[mi+offs[4]] &= masks[4]
			seg[mi+offs[5]] &= masks[5]
			seg[mi+offs[6]] &= masks[6]
			seg[mi+offs[7]] &= masks[7]
			mi += rot
		}
		for mi < size {
			el := &wheel.Wheel30[wi]
			seg[mi] &= el.UnsetBit
			mi += uint64(el.NextMultipleFactor)*prime + uint64(el.Correct)
			wi = uint64(el.Next)
		}

		sp.setIndexes(mi-size, wi)
	}
}
