package sieve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// composites returns a trial-division composite table for [0, limit].
func composites(limit uint64) []bool {
	comp := make([]bool, limit+1)
	comp[0] = true
	if limit >= 1 {
		comp[1] = true
	}
	for i := uint64(2); i*i <= limit; i++ {
		if comp[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			comp[j] = true
		}
	}
	return comp
}

// tupletOffsets lists, per constellation size, the admissible member
// offsets from the first prime (first member >= 7).
var tupletOffsets = [5][][]uint64{
	{{0, 2}},
	{{0, 2, 6}, {0, 4, 6}},
	{{0, 2, 6, 8}},
	{{0, 2, 6, 8, 12}, {0, 4, 6, 10, 12}},
	{{0, 4, 6, 10, 12, 16}},
}

// smallConstellations are the constellations whose first member lies
// below 7, per size.
var smallConstellations = [5][][]uint64{
	{{3, 5}, {5, 7}},
	{{5, 7, 11}},
	{{5, 7, 11, 13}},
	{{5, 7, 11, 13, 17}},
	{},
}

// refCounts computes all six categories for [start, stop] by trial
// division. A constellation counts when all its members lie in range.
func refCounts(start, stop uint64) Counts {
	comp := composites(stop + 40)
	var c Counts
	for _, p := range []uint64{2, 3, 5} {
		if p >= start && p <= stop {
			c.Primes++
		}
	}
	for v := uint64(7); v <= stop; v++ {
		if !comp[v] && v >= start {
			c.Primes++
		}
	}

	var tuplets [5]uint64
	for k := 2; k <= 6; k++ {
		for _, members := range smallConstellations[k-2] {
			if members[0] >= start && members[len(members)-1] <= stop {
				tuplets[k-2]++
			}
		}
		for p := uint64(7); p <= stop; p++ {
			if p < start {
				continue
			}
			for _, offs := range tupletOffsets[k-2] {
				match := true
				for _, o := range offs {
					if p+o > stop || comp[p+o] {
						match = false
						break
					}
				}
				if match {
					tuplets[k-2]++
				}
			}
		}
	}
	c.Twins, c.Triplets, c.Quadruplets = tuplets[0], tuplets[1], tuplets[2]
	c.Quintuplets, c.Sextuplets = tuplets[3], tuplets[4]
	return c
}

func countRange(t *testing.T, start, stop uint64, opts ...Option) Counts {
	t.Helper()
	s, err := New(start, stop, opts...)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	return s.Counts()
}

func TestKnownCounts(t *testing.T) {
	c := countRange(t, 0, 100, WithFlags(CountPrimes|CountTwins))
	assert.Equal(t, uint64(25), c.Primes)
	assert.Equal(t, uint64(8), c.Twins)

	c = countRange(t, 0, 1000000, WithFlags(CountPrimes))
	assert.Equal(t, uint64(78498), c.Primes)
}

func TestCountsMatchReference(t *testing.T) {
	ranges := [][2]uint64{
		{0, 0}, {0, 6}, {0, 7}, {7, 7}, {8, 10}, {29, 31}, {100, 100},
		{0, 100000}, {90000, 100000}, {999983, 999983}, {0, 1000000},
	}
	for _, r := range ranges {
		got := countRange(t, r[0], r[1], WithFlags(CountAll))
		require.Equal(t, refCounts(r[0], r[1]), got, "range [%d, %d]", r[0], r[1])
	}
}

func TestGenerateWindow(t *testing.T) {
	var got []uint64
	s, err := New(0, 30, WithPrimeFunc(func(p uint64) bool {
		got = append(got, p)
		return true
	}))
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got)
}

func TestStreamMatchesReference(t *testing.T) {
	comp := composites(10000)
	var want []uint64
	for v := uint64(2); v <= 10000; v++ {
		if !comp[v] {
			want = append(want, v)
		}
	}
	var got []uint64
	s, err := New(0, 10000, WithPrimeFunc(func(p uint64) bool {
		got = append(got, p)
		return true
	}))
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.Equal(t, want, got)
}

func TestTupletStream(t *testing.T) {
	want := [][]uint64{
		{3, 5}, {5, 7}, {11, 13}, {17, 19}, {29, 31}, {41, 43}, {59, 61}, {71, 73},
	}
	var got [][]uint64
	s, err := New(0, 100, WithTupletFunc(2, func(members []uint64) bool {
		cp := make([]uint64, len(members))
		copy(cp, members)
		got = append(got, cp)
		return true
	}))
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.Equal(t, want, got)
}

func TestEarlyStop(t *testing.T) {
	var got []uint64
	s, err := New(0, 1000000, WithPrimeFunc(func(p uint64) bool {
		got = append(got, p)
		return len(got) < 10
	}))
	require.NoError(t, err)
	require.NoError(t, s.Run(), "a consumer stop is not an error")
	assert.Len(t, got, 10)
}

func TestRunIsSingleShot(t *testing.T) {
	s, err := New(0, 1000)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.ErrorIs(t, s.Run(), ErrState)
}

func TestConfigErrors(t *testing.T) {
	_, err := New(10, 5)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(0, 100, WithTupletFunc(1, func([]uint64) bool { return true }))
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(0, 100, WithTupletFunc(7, func([]uint64) bool { return true }))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestProgress(t *testing.T) {
	s, err := New(0, 100000, WithFlags(CountPrimes))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Processed())
	require.NoError(t, s.Run())
	assert.Equal(t, uint64(100001), s.Processed())
	assert.Equal(t, float64(100), s.Percent())
}

func TestSmallSegments(t *testing.T) {
	// a 1 KiB segment forces many segment iterations and store rebases
	c := countRange(t, 0, 1000000, WithFlags(CountPrimes|CountTwins), WithSieveSize(1))
	assert.Equal(t, uint64(78498), c.Primes)
	assert.Equal(t, refCounts(0, 1000000).Twins, c.Twins)
}

func TestStopBelowSieveStart(t *testing.T) {
	c := countRange(t, 0, 6, WithFlags(CountAll))
	assert.Equal(t, uint64(3), c.Primes)
	assert.Equal(t, uint64(1), c.Twins) // (3, 5)
}

func TestIsqrt(t *testing.T) {
	cases := map[uint64]uint64{
		0: 0, 1: 1, 3: 1, 4: 2, 15: 3, 16: 4, 24: 4, 25: 5,
		1 << 40:        1 << 20,
		math.MaxUint64: 4294967295,
	}
	for n, want := range cases {
		assert.Equal(t, want, isqrt(n), "isqrt(%d)", n)
	}
}

func TestClampSieveSize(t *testing.T) {
	assert.Equal(t, 1, ClampSieveSize(0))
	assert.Equal(t, 1, ClampSieveSize(1))
	assert.Equal(t, 2, ClampSieveSize(3))
	assert.Equal(t, 1024, ClampSieveSize(1500))
	assert.Equal(t, 2048, ClampSieveSize(2048))
	assert.Equal(t, 2048, ClampSieveSize(1<<20))
}

func TestDefaultSieveSize(t *testing.T) {
	kb := DefaultSieveSize()
	assert.GreaterOrEqual(t, kb, 1)
	assert.LessOrEqual(t, kb, 2048)
	assert.Zero(t, kb&(kb-1), "must be a power of two")
}

func TestClampThreads(t *testing.T) {
	max := ClampThreads(0)
	assert.GreaterOrEqual(t, max, 1)
	assert.Equal(t, 1, ClampThreads(1))
	assert.Equal(t, max, ClampThreads(max+100))
	assert.Equal(t, max, ClampThreads(-3))
}
