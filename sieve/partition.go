package sieve

import "math"

// Chunk is a disjoint sub-range assigned to exactly one engine.
type Chunk struct {
	Start uint64
	Stop  uint64
}

// minChunkSpan keeps chunks from shrinking below the point where engine
// setup dominates the sieving itself.
const minChunkSpan = 1 << 16

// Partition splits [start, stop] into at most n contiguous,
// non-overlapping chunks whose concatenation reproduces the range
// exactly. Widths grow with magnitude: boundaries are placed at equal
// increments of an x/ln(x) prime-count estimate, so the expected number
// of primes per chunk stays roughly level as density falls.
func Partition(start, stop uint64, n int) []Chunk {
	if n < 1 {
		n = 1
	}
	span := stop - start
	if limit := span/minChunkSpan + 1; uint64(n) > limit {
		n = int(limit)
	}
	if n == 1 {
		return []Chunk{{start, stop}}
	}

	lo, hi := primeCountApprox(start), primeCountApprox(stop)
	chunks := make([]Chunk, 0, n)
	prev := start
	for i := 1; i < n; i++ {
		target := lo + (hi-lo)*float64(i)/float64(n)
		b := alignBoundary(boundarySearch(prev, stop, target))
		if b <= prev || b > stop {
			continue
		}
		chunks = append(chunks, Chunk{prev, b - 1})
		prev = b
	}
	return append(chunks, Chunk{prev, stop})
}

// alignBoundary rounds a chunk boundary up to the next value congruent
// to 7 modulo 30. The bitmap layout packs 30 numbers per byte starting
// at 7, so aligned boundaries keep every byte within one chunk and
// in-byte constellations are never split between neighbors.
func alignBoundary(b uint64) uint64 {
	return b + (7-b%30+30)%30
}

// primeCountApprox estimates the number of primes below x. Only
// monotonicity matters to the partitioning, not accuracy.
func primeCountApprox(x uint64) float64 {
	v := float64(x)
	if v < 8 {
		return v / 2
	}
	return v / (math.Log(v) - 1)
}

// boundarySearch returns the smallest x in [lo, hi] whose estimated
// prime count reaches target.
func boundarySearch(lo, hi uint64, target float64) uint64 {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if primeCountApprox(mid) < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
