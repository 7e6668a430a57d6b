package sieve

import (
	"math/bits"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// ClampSieveSize bounds a segment size in kilobytes to [1, 2048] and
// rounds it down to a power of two.
func ClampSieveSize(kb int) int {
	if kb < 1 {
		kb = 1
	}
	if kb > 2048 {
		kb = 2048
	}
	return 1 << (bits.Len(uint(kb)) - 1)
}

// DefaultSieveSize returns the segment size in kilobytes used when none
// is configured. The sieve runs fastest when a segment fits a per-core
// cache: when the CPU reports both an L2 and an L3 the L2 is assumed
// private and used, otherwise the L1 data cache size is used.
func DefaultSieveSize() int {
	l1 := cpuid.CPU.Cache.L1D / 1024
	l2 := cpuid.CPU.Cache.L2 / 1024
	l3 := cpuid.CPU.Cache.L3 / 1024

	if l2 > l1 && l2 > 0 && l3 > 0 {
		if l2 < 32 {
			l2 = 32
		}
		return ClampSieveSize(l2)
	}
	if l1 <= 0 {
		l1 = 32
	}
	if l1 < 8 {
		l1 = 8
	}
	return ClampSieveSize(l1)
}

// ClampThreads bounds a worker count to [1, runtime.NumCPU()]. Zero or a
// negative count selects the maximum.
func ClampThreads(n int) int {
	max := runtime.NumCPU()
	if n <= 0 || n > max {
		return max
	}
	return n
}
