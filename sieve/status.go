package sieve

import (
	"math"
	"sync/atomic"
)

// progress tracks how much of a range has been sieved. One instance is
// shared by all chunk engines of a parallel run, so the counter only ever
// grows and the derived percentage is monotonic.
type progress struct {
	processed atomic.Uint64
	total     uint64
}

func newProgress(start, stop uint64) *progress {
	total := stop - start
	if total < math.MaxUint64 {
		total++
	}
	return &progress{total: total}
}

func (p *progress) add(n uint64) {
	p.processed.Add(n)
}

func (p *progress) finish() {
	p.processed.Store(p.total)
}

// value returns the processed count, clamped to the range's size.
func (p *progress) value() uint64 {
	v := p.processed.Load()
	if v > p.total {
		return p.total
	}
	return v
}

// percent returns completion in [0, 100].
func (p *progress) percent() float64 {
	if p.total == 0 {
		return 100
	}
	return 100 * float64(p.value()) / float64(p.total)
}
