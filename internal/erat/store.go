// Package erat implements the segmented sieve of Eratosthenes cross-off
// strategies. Sieving primes are held in compact append-only stores, one
// per magnitude bucket, and each strategy mutates the segment bitmap in
// place while advancing its records past the segment boundary.
package erat

import (
	"errors"
	"fmt"

	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

var (
	// ErrSieveSize indicates a segment size above the 4096 KiB cap.
	ErrSieveSize = errors.New("erat: sieve size must be <= 4096 KiB")
	// ErrSievePow2 indicates a segment size that is not a power of two.
	ErrSievePow2 = errors.New("erat: sieve size must be a power of two")
	// ErrMaxPrime indicates a store bound incompatible with the segment size.
	ErrMaxPrime = errors.New("erat: max prime must be <= sieve size * 5")
	// ErrPrimeBound indicates a stored prime above the configured maximum.
	ErrPrimeBound = errors.New("erat: prime exceeds store maximum")
)

const (
	multipleIndexBits = 23

	// MaxMultipleIndex bounds the packed in-segment byte offset of a
	// record's next multiple. Keeping rebased indexes below it is what
	// caps the segment size and the medium store's prime bound.
	MaxMultipleIndex = 1<<multipleIndexBits - 1

	// MaxSieveBytes is the largest supported segment (4096 KiB).
	MaxSieveBytes = 4096 << 10

	// mediumFactor bounds the medium store: primes up to mediumFactor *
	// sieve bytes still have at least one multiple in most segments while
	// their rebased multiple index stays packable.
	mediumFactor = 5
)

// SievingPrime is one packed store record: the reduced prime value
// (prime / 30) and the jointly updated multiple index (low 23 bits) plus
// wheel index (high 9 bits). The two indexes are never written separately.
type SievingPrime struct {
	indexes uint32
	prime   uint32
}

func pack(multipleIndex, wheelIndex uint64) uint32 {
	return uint32(multipleIndex | wheelIndex<<multipleIndexBits)
}

// MultipleIndex returns the byte offset, within the current segment, of
// the next multiple to clear.
func (s SievingPrime) MultipleIndex() uint64 {
	return uint64(s.indexes) & MaxMultipleIndex
}

// WheelIndex returns the position in the wheel-rotation table.
func (s SievingPrime) WheelIndex() uint64 {
	return uint64(s.indexes >> multipleIndexBits)
}

// Prime returns the reduced prime value.
func (s SievingPrime) Prime() uint64 {
	return uint64(s.prime)
}

func (s *SievingPrime) setIndexes(multipleIndex, wheelIndex uint64) {
	s.indexes = pack(multipleIndex, wheelIndex)
}

// store is an append-only arena of sieving primes, iterated in insertion
// order during cross-off. Entries are never removed individually.
type store struct {
	primes   []SievingPrime
	maxPrime uint64
}

func (st *store) push(prime, multipleIndex, wheelIndex uint64) error {
	if prime > st.maxPrime {
		return fmt.Errorf("%w: %d > %d", ErrPrimeBound, prime, st.maxPrime)
	}
	st.primes = append(st.primes, SievingPrime{
		indexes: pack(multipleIndex, wheelIndex),
		prime:   uint32(prime / wheel.NumbersPerByte),
	})
	return nil
}
