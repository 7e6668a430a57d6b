package sieve

// smallTuples covers the primes below 7 and the constellations whose
// first member lies below 7. The sieve bitmap starts at 7, so these
// cannot be read off a segment and are matched directly against the
// requested range before sieving begins. Constellations starting at 7 or
// later are detected in the bitmap like any other.
var smallTuples = []struct {
	category int
	members  []uint64
}{
	{0, []uint64{2}},
	{0, []uint64{3}},
	{0, []uint64{5}},
	{1, []uint64{3, 5}},
	{1, []uint64{5, 7}},
	{2, []uint64{5, 7, 11}},
	{3, []uint64{5, 7, 11, 13}},
	{4, []uint64{5, 7, 11, 13, 17}},
}

// smallSweep counts and streams the sub-7 entries that fall inside
// [start, stop]. Runs before the first segment so streamed output stays
// in ascending order.
func (s *Sieve) smallSweep() error {
	for _, t := range smallTuples {
		first, last := t.members[0], t.members[len(t.members)-1]
		if s.start > first || last > s.stop {
			continue
		}
		if s.cfg.flags.has(t.category) {
			s.counts[t.category]++
		}
		if t.category == 0 && s.cfg.onPrime != nil {
			if !s.cfg.onPrime(first) {
				return errStopped
			}
		}
		if s.cfg.onTuplet != nil && t.category == s.cfg.tupletK-1 {
			if !s.cfg.onTuplet(t.members) {
				return errStopped
			}
		}
	}
	return nil
}
