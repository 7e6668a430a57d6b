package sieve

// PrimeFunc receives primes in ascending order. Returning false stops the
// generation; the engine unwinds cleanly and reports a partial result.
type PrimeFunc func(prime uint64) bool

// TupletFunc receives the members of each prime k-tuplet in ascending
// order of first member. The slice is reused between calls; copy it if it
// must outlive the callback. Returning false stops the generation.
type TupletFunc func(members []uint64) bool

type config struct {
	sieveKB  int
	threads  int
	flags    Flags
	onPrime  PrimeFunc
	onTuplet TupletFunc
	tupletK  int
	prog     *progress
}

// Option configures a Sieve or Parallel engine.
type Option func(*config)

// WithSieveSize sets the segment size in kilobytes. Sizes are clamped to
// [1, 2048] and rounded down to a power of two; zero selects a size
// derived from the CPU's cache hierarchy.
func WithSieveSize(kb int) Option {
	return func(c *config) { c.sieveKB = kb }
}

// WithThreads sets the worker count for a Parallel engine, clamped to
// [1, runtime.NumCPU()]. Zero selects the maximum. Single-range engines
// ignore it.
func WithThreads(n int) Option {
	return func(c *config) { c.threads = n }
}

// WithFlags selects the categories to count.
func WithFlags(f Flags) Option {
	return func(c *config) { c.flags = f }
}

// WithPrimeFunc streams every prime to fn.
func WithPrimeFunc(fn PrimeFunc) Option {
	return func(c *config) { c.onPrime = fn }
}

// WithTupletFunc streams every prime k-tuplet to fn, for k between 2
// (twins) and 6 (sextuplets).
func WithTupletFunc(k int, fn TupletFunc) Option {
	return func(c *config) {
		c.tupletK = k
		c.onTuplet = fn
	}
}
