package bitmap

import (
	"testing"

	"github.com/TusharAgarwal123/primesieve/internal/wheel"
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

// refSegment builds a segment whose set bits are exactly the primes
// among the represented values, plus the list of those primes.
func refSegment(base uint64, n int) ([]byte, []uint64, []bool) {
	top := (base+uint64(n)-1)*wheel.NumbersPerByte + 31
	comp := composites(top + 20)
	seg := make([]byte, n)
	var primes []uint64
	for i := 0; i < n; i++ {
		for k := 0; k < 8; k++ {
			v := (base+uint64(i))*wheel.NumbersPerByte + wheel.BitValue(k)
			if !comp[v] {
				seg[i] |= 1 << k
				primes = append(primes, v)
			}
		}
	}
	return seg, primes, comp
}

func TestPopCount(t *testing.T) {
	for _, base := range []uint64{0, 1000} {
		seg, primes, _ := refSegment(base, 128)
		if got := PopCount(seg); got != uint64(len(primes)) {
			t.Fatalf("base %d: PopCount = %d, want %d", base, got, len(primes))
		}
	}
	if got := PopCount(nil); got != 0 {
		t.Fatalf("PopCount(nil) = %d", got)
	}
}

func TestForEachPrime(t *testing.T) {
	for _, base := range []uint64{0, 1000} {
		seg, primes, _ := refSegment(base, 128)
		var got []uint64
		ok := ForEachPrime(seg, base, func(p uint64) bool {
			got = append(got, p)
			return true
		})
		if !ok {
			t.Fatalf("base %d: iteration stopped unexpectedly", base)
		}
		if len(got) != len(primes) {
			t.Fatalf("base %d: got %d primes, want %d", base, len(got), len(primes))
		}
		for i := range got {
			if got[i] != primes[i] {
				t.Fatalf("base %d: prime %d = %d, want %d", base, i, got[i], primes[i])
			}
		}
	}
}

func TestForEachPrimeStops(t *testing.T) {
	seg, _, _ := refSegment(0, 64)
	var got []uint64
	ok := ForEachPrime(seg, 0, func(p uint64) bool {
		got = append(got, p)
		return len(got) < 5
	})
	if ok || len(got) != 5 {
		t.Fatalf("stop after 5: ok=%v n=%d", ok, len(got))
	}
}

// tupletOffsets lists, per constellation size, the admissible member
// offsets from the first prime.
var tupletOffsets = [5][][]uint64{
	{{0, 2}},
	{{0, 2, 6}, {0, 4, 6}},
	{{0, 2, 6, 8}},
	{{0, 2, 6, 8, 12}, {0, 4, 6, 10, 12}},
	{{0, 4, 6, 10, 12, 16}},
}

// refTuplets lists the constellations of size k whose first member is a
// represented value of the segment, via trial division.
func refTuplets(base uint64, n, k int, comp []bool) [][]uint64 {
	var all [][]uint64
	lowest := base*wheel.NumbersPerByte + 7
	top := (base+uint64(n)-1)*wheel.NumbersPerByte + 31
	for p := lowest; p <= top; p++ {
		for _, offs := range tupletOffsets[k-MinTuplet] {
			match := true
			for _, o := range offs {
				if comp[p+o] {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			members := make([]uint64, len(offs))
			for i, o := range offs {
				members[i] = p + o
			}
			all = append(all, members)
		}
	}
	return all
}

func TestCountTuplets(t *testing.T) {
	for _, base := range []uint64{0, 1000} {
		seg, _, comp := refSegment(base, 128)
		for k := MinTuplet; k <= MaxTuplet; k++ {
			want := uint64(len(refTuplets(base, 128, k, comp)))
			if got := CountTuplets(seg, k); got != want {
				t.Fatalf("base %d k=%d: CountTuplets = %d, want %d", base, k, got, want)
			}
		}
	}
}

func TestForEachTuplet(t *testing.T) {
	seg, _, comp := refSegment(0, 256)
	for k := MinTuplet; k <= MaxTuplet; k++ {
		want := refTuplets(0, 256, k, comp)
		var got [][]uint64
		ok := ForEachTuplet(seg, 0, k, func(members []uint64) bool {
			cp := make([]uint64, len(members))
			copy(cp, members)
			got = append(got, cp)
			return true
		})
		if !ok {
			t.Fatalf("k=%d: iteration stopped unexpectedly", k)
		}
		if len(got) != len(want) {
			t.Fatalf("k=%d: got %d tuplets, want %d", k, len(got), len(want))
		}
		for i := range got {
			for j := range got[i] {
				if got[i][j] != want[i][j] {
					t.Fatalf("k=%d tuplet %d: got %v, want %v", k, i, got[i], want[i])
				}
			}
		}
	}
}
