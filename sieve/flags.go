package sieve

// Flags select the prime categories an engine counts. Any subset may be
// combined; streaming consumers are configured separately and work
// alongside counting.
type Flags uint32

const (
	CountPrimes Flags = 1 << iota
	CountTwins
	CountTriplets
	CountQuadruplets
	CountQuintuplets
	CountSextuplets

	// CountAll selects every category.
	CountAll = CountPrimes | CountTwins | CountTriplets | CountQuadruplets | CountQuintuplets | CountSextuplets
)

const numCategories = 6

func (f Flags) has(category int) bool {
	return f&(1<<category) != 0
}

// Counts holds one 64-bit total per prime category.
type Counts struct {
	Primes      uint64
	Twins       uint64
	Triplets    uint64
	Quadruplets uint64
	Quintuplets uint64
	Sextuplets  uint64
}

func countsOf(a [numCategories]uint64) Counts {
	return Counts{
		Primes:      a[0],
		Twins:       a[1],
		Triplets:    a[2],
		Quadruplets: a[3],
		Quintuplets: a[4],
		Sextuplets:  a[5],
	}
}
