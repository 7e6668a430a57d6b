package sieve

import (
	"fmt"
	"math"

	"github.com/TusharAgarwal123/primesieve/internal/bitmap"
	"github.com/TusharAgarwal123/primesieve/internal/presieve"
	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

// sieveSegment drives one segment: pre-sieve, the three cross-off
// strategies in ascending prime order, edge trimming, then consumption.
func (s *Sieve) sieveSegment() error {
	size := s.sieveBytes
	if left := s.stopByte - s.segBase + 1; left < size {
		size = left
	}
	seg := s.buf[:size]

	// promote newly usable sieving primes: p may strike this segment
	// once p^2 is at or below its top value
	high := s.segmentHigh(size)
	for {
		p, ok := s.gen.Peek()
		if !ok || p*p > high {
			break
		}
		if err := s.addSievingPrime(p); err != nil {
			return err
		}
		s.gen.Next()
	}

	presieve.Apply(seg, s.segBase)
	s.small.CrossOff(seg)
	s.medium.CrossOff(seg)
	s.big.CrossOff(seg)

	// trim the range edges: bits below start in the first byte, bits
	// above stop in the last
	if s.segBase == s.firstBase && s.start > 7 {
		seg[0] &= wheel.UnsetSmaller[s.start-s.segBase*wheel.NumbersPerByte]
	}
	if s.segBase+size-1 == s.stopByte {
		seg[size-1] &= wheel.UnsetLarger[s.stop-s.stopByte*wheel.NumbersPerByte]
	}

	// zero the padding so the word-wide scans see no ghost bits
	padded := s.buf[:(size+7)&^uint64(7)]
	for i := size; i < uint64(len(padded)); i++ {
		padded[i] = 0
	}

	if err := s.consume(seg, padded); err != nil {
		return err
	}
	s.prog.add(size * wheel.NumbersPerByte)
	s.segBase += size
	return nil
}

// segmentHigh returns the value of the last bit a segment of the given
// size can represent, saturating near the top of the 64-bit domain.
func (s *Sieve) segmentHigh(size uint64) uint64 {
	lastByte := s.segBase + size - 1
	if lastByte > (math.MaxUint64-31)/wheel.NumbersPerByte {
		return math.MaxUint64
	}
	return lastByte*wheel.NumbersPerByte + 31
}

// addSievingPrime routes a newly discovered prime into the bucket chosen
// by its multiple density per segment. The choice is permanent for the
// engine's lifetime.
func (s *Sieve) addSievingPrime(p uint64) error {
	var err error
	switch {
	case p <= s.maxSmall:
		err = s.small.Add(p, s.segBase)
	case p <= s.maxMedium:
		err = s.medium.Add(p, s.segBase)
	default:
		err = s.big.Add(p, s.segBase)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrConfig, err)
	}
	return nil
}

func (s *Sieve) consume(seg, padded []byte) error {
	if s.cfg.flags.has(0) {
		s.counts[0] += bitmap.PopCount(padded)
	}
	for k := bitmap.MinTuplet; k <= bitmap.MaxTuplet; k++ {
		if s.cfg.flags.has(k - 1) {
			s.counts[k-1] += bitmap.CountTuplets(seg, k)
		}
	}
	if s.cfg.onPrime != nil {
		if !bitmap.ForEachPrime(padded, s.segBase, s.cfg.onPrime) {
			return errStopped
		}
	}
	if s.cfg.onTuplet != nil {
		if !bitmap.ForEachTuplet(seg, s.segBase, s.cfg.tupletK, s.cfg.onTuplet) {
			return errStopped
		}
	}
	return nil
}
