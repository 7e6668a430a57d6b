// Package primesieve generates and counts primes and prime k-tuplets
// over 64-bit ranges. It is the convenience surface over the sieve
// package: each call builds a parallel engine from the process-wide
// settings, runs it to completion and returns the result. For
// fine-grained control over a single run use sieve.New or
// sieve.NewParallel directly.
package primesieve

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/TusharAgarwal123/primesieve/sieve"
)

var (
	sieveSizeKB atomic.Int32
	numThreads  atomic.Int32
)

// MaxStop returns the largest supported upper bound.
func MaxStop() uint64 {
	return sieve.MaxStop
}

// SetSieveSize sets the segment size in kilobytes for subsequent calls.
// Sizes are clamped to [1, 2048] and rounded down to a power of two;
// zero restores the cache-derived default.
func SetSieveSize(kb int) {
	if kb != 0 {
		kb = sieve.ClampSieveSize(kb)
	}
	sieveSizeKB.Store(int32(kb))
}

// SieveSize returns the segment size in kilobytes subsequent calls will
// use.
func SieveSize() int {
	if kb := int(sieveSizeKB.Load()); kb != 0 {
		return kb
	}
	return sieve.DefaultSieveSize()
}

// SetNumThreads sets the worker count for subsequent calls, clamped to
// [1, runtime.NumCPU()]. Zero or a negative count restores the maximum.
func SetNumThreads(n int) {
	if n > 0 {
		n = sieve.ClampThreads(n)
	} else {
		n = 0
	}
	numThreads.Store(int32(n))
}

// NumThreads returns the worker count subsequent calls will use.
func NumThreads() int {
	return sieve.ClampThreads(int(numThreads.Load()))
}

func engineOpts(extra ...sieve.Option) []sieve.Option {
	opts := []sieve.Option{
		sieve.WithSieveSize(int(sieveSizeKB.Load())),
		sieve.WithThreads(int(numThreads.Load())),
	}
	return append(opts, extra...)
}

// Count sieves [start, stop] and returns the totals of every category
// selected by flags.
func Count(start, stop uint64, flags sieve.Flags) (sieve.Counts, error) {
	p, err := sieve.NewParallel(start, stop, engineOpts(sieve.WithFlags(flags))...)
	if err != nil {
		return sieve.Counts{}, err
	}
	if err := p.Run(); err != nil {
		return sieve.Counts{}, err
	}
	return p.Counts(), nil
}

// CountPrimes returns the number of primes in [start, stop].
func CountPrimes(start, stop uint64) (uint64, error) {
	c, err := Count(start, stop, sieve.CountPrimes)
	return c.Primes, err
}

// CountTwins returns the number of twin prime pairs whose first member
// lies in [start, stop].
func CountTwins(start, stop uint64) (uint64, error) {
	c, err := Count(start, stop, sieve.CountTwins)
	return c.Twins, err
}

// CountTriplets returns the number of prime triplets whose first member
// lies in [start, stop].
func CountTriplets(start, stop uint64) (uint64, error) {
	c, err := Count(start, stop, sieve.CountTriplets)
	return c.Triplets, err
}

// CountQuadruplets returns the number of prime quadruplets whose first
// member lies in [start, stop].
func CountQuadruplets(start, stop uint64) (uint64, error) {
	c, err := Count(start, stop, sieve.CountQuadruplets)
	return c.Quadruplets, err
}

// CountQuintuplets returns the number of prime quintuplets whose first
// member lies in [start, stop].
func CountQuintuplets(start, stop uint64) (uint64, error) {
	c, err := Count(start, stop, sieve.CountQuintuplets)
	return c.Quintuplets, err
}

// CountSextuplets returns the number of prime sextuplets whose first
// member lies in [start, stop].
func CountSextuplets(start, stop uint64) (uint64, error) {
	c, err := Count(start, stop, sieve.CountSextuplets)
	return c.Sextuplets, err
}

// Generate streams every prime in [start, stop] to fn in ascending
// order. fn returning false stops the generation without error.
func Generate(start, stop uint64, fn sieve.PrimeFunc) error {
	p, err := sieve.NewParallel(start, stop, engineOpts(sieve.WithPrimeFunc(fn))...)
	if err != nil {
		return err
	}
	return p.Run()
}

// Tuplets streams every prime k-tuplet whose first member lies in
// [start, stop] to fn, in ascending order of first member, for k
// between 2 (twins) and 6 (sextuplets).
func Tuplets(start, stop uint64, k int, fn sieve.TupletFunc) error {
	p, err := sieve.NewParallel(start, stop, engineOpts(sieve.WithTupletFunc(k, fn))...)
	if err != nil {
		return err
	}
	return p.Run()
}

// GenerateN streams the first n primes at or above start to fn in
// ascending order. The stop bound is unknown up front, so the range is
// extended in windows sized from a prime density estimate until n
// primes have been produced. fn returning false stops the generation
// without error.
func GenerateN(start, n uint64, fn sieve.PrimeFunc) error {
	if n == 0 {
		return nil
	}
	remaining := n
	stopped := false
	lo := start
	for {
		hi := windowStop(lo, remaining)
		err := Generate(lo, hi, func(p uint64) bool {
			if !fn(p) {
				stopped = true
				return false
			}
			remaining--
			return remaining > 0
		})
		if err != nil {
			return err
		}
		if stopped || remaining == 0 {
			return nil
		}
		if hi == sieve.MaxStop {
			return fmt.Errorf("%w: fewer than %d primes at or above %d", sieve.ErrConfig, n, start)
		}
		lo = hi + 1
	}
}

// windowStop returns the upper bound of the next window when n primes
// are still owed from lo on. The span overshoots the expected prime gap
// sum so one window usually suffices; saturates at the domain top.
func windowStop(lo, n uint64) uint64 {
	span := uint64(math.MaxUint64)
	if n <= (math.MaxUint64-10000)/50 {
		span = n*50 + 10000
	}
	if lo > math.MaxUint64-span {
		return math.MaxUint64
	}
	return lo + span
}

// NthPrime returns the nth prime at or above start when n is positive,
// and the |n|th prime at or below start when n is negative. n must not
// be zero.
func NthPrime(n int64, start uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: nth prime index must not be zero", sieve.ErrConfig)
	}
	if n > 0 {
		var last uint64
		err := GenerateN(start, uint64(n), func(p uint64) bool {
			last = p
			return true
		})
		if err != nil {
			return 0, err
		}
		return last, nil
	}

	// walk backward in windows until |n| primes have been seen
	need := uint64(-n)
	cur := start
	for {
		span := windowStop(0, need)
		lo := uint64(0)
		if cur > span {
			lo = cur - span
		}
		ps, err := Primes(lo, cur)
		if err != nil {
			return 0, err
		}
		if uint64(len(ps)) >= need {
			return ps[uint64(len(ps))-need], nil
		}
		need -= uint64(len(ps))
		if lo == 0 {
			return 0, fmt.Errorf("%w: fewer than %d primes at or below %d", sieve.ErrConfig, -n, start)
		}
		cur = lo - 1
	}
}

// Primes returns all primes in [start, stop] in ascending order.
func Primes(start, stop uint64) ([]uint64, error) {
	ps := make([]uint64, 0, approxPrimeCount(start, stop))
	err := Generate(start, stop, func(p uint64) bool {
		ps = append(ps, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// PrimesN returns the first n primes at or above start in ascending
// order.
func PrimesN(start, n uint64) ([]uint64, error) {
	ps := make([]uint64, 0, n)
	err := GenerateN(start, n, func(p uint64) bool {
		ps = append(ps, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// approxPrimeCount estimates the prime count of [start, stop] for
// allocation sizing.
func approxPrimeCount(start, stop uint64) int {
	pi := func(x uint64) float64 {
		v := float64(x)
		if v < 8 {
			return v / 2
		}
		return v / (math.Log(v) - 1)
	}
	est := pi(stop) - pi(start)
	if est < 16 {
		return 16
	}
	if est > 1<<26 {
		return 1 << 26
	}
	return int(est)
}
