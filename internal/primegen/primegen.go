// Package primegen supplies the sieving primes that feed the wheel
// sieve's buckets. It is a plain segmented odd-number sieve seeded by a
// fixed simple sieve: the generator's limit is at most 2^32 (the square
// root of the largest supported stop), so its work is negligible next to
// the main sieve's and none of the wheel machinery is needed here.
package primegen

// windowSpan is the numbers covered per generator window.
const windowSpan = 1 << 18

// Generator yields the primes in [23, limit] in ascending order. Primes
// below 23 never reach the cross-off buckets: 2, 3 and 5 have no bits in
// the sieve layout and 7 through 19 are handled by the pre-sieve.
type Generator struct {
	limit uint64
	base  []uint32
	low   uint64
	queue []uint64
	idx   int
}

// New returns a generator for the primes in [23, limit].
func New(limit uint64) *Generator {
	return &Generator{limit: limit, base: basePrimes(), low: 23}
}

// basePrimes returns the odd primes below 2^16, enough to sieve any
// window up to 2^32.
func basePrimes() []uint32 {
	const n = 1 << 16
	composite := make([]bool, n)
	var ps []uint32
	for i := 3; i < n; i += 2 {
		if composite[i] {
			continue
		}
		ps = append(ps, uint32(i))
		for j := i * i; j < n; j += 2 * i {
			composite[j] = true
		}
	}
	return ps
}

// Peek returns the next prime without consuming it; ok is false once the
// generator is exhausted.
func (g *Generator) Peek() (prime uint64, ok bool) {
	if g.idx >= len(g.queue) {
		g.fill()
	}
	if g.idx >= len(g.queue) {
		return 0, false
	}
	return g.queue[g.idx], true
}

// Next consumes the prime returned by Peek.
func (g *Generator) Next() {
	g.idx++
}

func (g *Generator) fill() {
	g.queue = g.queue[:0]
	g.idx = 0
	for len(g.queue) == 0 && g.low <= g.limit {
		hi := g.low + windowSpan - 1
		if hi > g.limit || hi < g.low {
			hi = g.limit
		}

		// odd candidates only; g.low stays odd across windows
		count := (hi-g.low)/2 + 1
		composite := make([]bool, count)
		for _, bp := range g.base {
			p := uint64(bp)
			if p*p > hi {
				break
			}
			m := p * p
			if m < g.low {
				m = (g.low + p - 1) / p * p
				if m%2 == 0 {
					m += p
				}
			}
			for ; m <= hi; m += 2 * p {
				composite[(m-g.low)/2] = true
			}
		}
		for i := uint64(0); i < count; i++ {
			if !composite[i] {
				g.queue = append(g.queue, g.low+2*i)
			}
		}
		g.low = hi + 1
	}
}
