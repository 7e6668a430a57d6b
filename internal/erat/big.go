package erat

import (
	"math/bits"

	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

// Big crosses off sieving primes that have at most one multiple per
// segment. Records are kept in one bucket per upcoming segment, indexed by
// how many segments away their next multiple falls, so a segment only ever
// touches the primes that actually strike it instead of scanning the whole
// store. Requires a power-of-two segment size so the bucket index is a
// shift of the multiple's byte offset.
type Big struct {
	buckets  [][]SievingPrime
	stop     uint64
	bytes    uint64
	log2Size uint
	maxPrime uint64
}

// NewBig returns a Big cross-off for primes up to maxPrime over segments
// of sieveBytes bytes.
func NewBig(stop, sieveBytes, maxPrime uint64) (*Big, error) {
	if sieveBytes > MaxSieveBytes {
		return nil, ErrSieveSize
	}
	if sieveBytes == 0 || sieveBytes&(sieveBytes-1) != 0 {
		return nil, ErrSievePow2
	}
	return &Big{
		buckets:  make([][]SievingPrime, 1),
		stop:     stop,
		bytes:    sieveBytes,
		log2Size: uint(bits.TrailingZeros64(sieveBytes)),
		maxPrime: maxPrime,
	}, nil
}

// Add stores prime in the bucket of the segment its first multiple falls
// into, with the multiple index reduced to an in-segment offset.
func (e *Big) Add(prime, segBase uint64) error {
	if prime > e.maxPrime {
		return ErrPrimeBound
	}
	mi, wi, ok := firstMultiple(prime, segBase, e.stop, wheel.Modulo210, wheel.Init210[:], wheel.Spokes210)
	if !ok {
		return nil
	}
	e.put(int(mi>>e.log2Size), mi&(e.bytes-1), wi, uint32(prime/wheel.NumbersPerByte))
	return nil
}

func (e *Big) put(bucket int, multipleIndex, wheelIndex uint64, reduced uint32) {
	for len(e.buckets) <= bucket {
		e.buckets = append(e.buckets, nil)
	}
	e.buckets[bucket] = append(e.buckets[bucket], SievingPrime{
		indexes: pack(multipleIndex, wheelIndex),
		prime:   reduced,
	})
}

// CrossOff clears the (usually single) multiple of every prime bucketed
// for the current segment and re-buckets each prime for the segment its
// next multiple falls into.
func (e *Big) CrossOff(seg []byte) {
	size := uint64(len(seg))
	cur := e.buckets[0]
	for _, sp := range cur {
		prime, mi, wi := sp.Prime(), sp.MultipleIndex(), sp.WheelIndex()
		for mi < size {
			el := &wheel.Wheel210[wi]
			seg[mi] &= el.UnsetBit
			mi += uint64(el.NextMultipleFactor)*prime + uint64(el.Correct)
			wi = uint64(el.Next)
		}
		mi -= size
		// bucket 1+dist: the offset is now relative to the next segment
		e.put(1+int(mi>>e.log2Size), mi&(e.bytes-1), wi, sp.prime)
	}

	// recycle the drained bucket and rotate the ring forward one segment
	e.buckets[0] = cur[:0]
	if len(e.buckets) > 1 {
		front := e.buckets[0]
		copy(e.buckets, e.buckets[1:])
		e.buckets[len(e.buckets)-1] = front
	}
}
