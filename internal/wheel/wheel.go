// Package wheel houses the modulo-30 and modulo-210 wheel factorization
// tables used by the segmented sieve. The goal is to keep the table
// semantics in one place and independent from the cross-off strategies so
// that all of them progress masks, byte deltas and wheel indexes
// identically.
//
// The sieve bitmap packs 30 numbers per byte: bit k of byte i represents
// the value 30*i + bitValues[k], so only residues coprime to 2, 3 and 5
// occupy storage. Both wheels are generated at package init from first
// principles; the generation is cheap and avoids transcription errors in
// the 448 table entries.
package wheel

const (
	// NumbersPerByte is the span of the number line covered by one sieve byte.
	NumbersPerByte = 30

	// Modulo30 and Modulo210 are the wheel moduli. The 30-wheel (primes
	// 2,3,5) drives the small cross-off, the 210-wheel (primes 2,3,5,7)
	// drives the medium and big cross-offs.
	Modulo30  = 30
	Modulo210 = 210

	// Classes is the number of residue classes a sieving prime can fall
	// into, one per bit of a sieve byte.
	Classes = 8

	// Spokes30 and Spokes210 are the wheel elements per residue class.
	Spokes30  = 8
	Spokes210 = 48
)

// bitValues maps a bit position to its value offset within a 30-number
// block. Bit 7 represents offset 31, which numerically belongs to the next
// block; the mapping keeps all 8 coprime residues of a block in one byte.
var bitValues = [8]uint64{7, 11, 13, 17, 19, 23, 29, 31}

// classValues is the p % 30 residue of each class, in bit order. Class 7
// holds primes congruent to 1 (mod 30).
var classValues = [8]int64{7, 11, 13, 17, 19, 23, 29, 1}

// classOf maps p % 30 to the residue class index, or -1 for residues no
// prime above 5 can have.
var classOf [30]int8

// bitOf maps v % 30 to the bit position of v, or -1.
var bitOf [30]int8

// Element is one wheel table entry. Given a sieving prime's current
// multiple at byte position i with wheel index w:
//
//	sieve[i] &= Element[w].UnsetBit
//	i += Element[w].NextMultipleFactor * (prime / 30) + Element[w].Correct
//	w = Element[w].Next
//
// UnsetBit clears the multiple's bit, NextMultipleFactor scales the reduced
// prime by the factor gap to the next wheel spoke, and Correct compensates
// for the uneven spacing of the residues skipped by the wheel. Next is the
// absolute index of the following entry; it wraps within the prime's
// residue class when a full rotation completes.
type Element struct {
	UnsetBit           uint8
	NextMultipleFactor uint8
	Correct            uint8
	Next               uint16
}

// Init maps the remainder of a multiple's quotient to the first wheel
// spoke at or above it: NextMultipleFactor is added to the quotient and
// WheelIndex is the spoke's position within the prime's residue class.
type Init struct {
	NextMultipleFactor uint8
	WheelIndex         uint8
}

var (
	// Wheel30 holds Classes * Spokes30 entries, Wheel210 holds
	// Classes * Spokes210 entries. Entry c*spokes+j belongs to residue
	// class c, spoke j.
	Wheel30  [Classes * Spokes30]Element
	Wheel210 [Classes * Spokes210]Element

	Init30  [Modulo30]Init
	Init210 [Modulo210]Init

	// UnsetSmaller[r] keeps only the bits whose value offset within the
	// byte is >= r; UnsetLarger[r] keeps only those <= r. Both are used to
	// trim the edge bytes of a sieved range, where r = bound - 30*byte is
	// always in [7, 36].
	UnsetSmaller [37]uint8
	UnsetLarger  [37]uint8
)

func init() {
	for i := range classOf {
		classOf[i] = -1
		bitOf[i] = -1
	}
	for k, v := range bitValues {
		bitOf[v%30] = int8(k)
	}
	for c, r := range classValues {
		classOf[r%30] = int8(c)
	}

	buildWheel(Modulo30, Wheel30[:], Init30[:])
	buildWheel(Modulo210, Wheel210[:], Init210[:])

	for r := 0; r <= 36; r++ {
		var smaller, larger uint8
		for k, v := range bitValues {
			if v >= uint64(r) {
				smaller |= 1 << k
			}
			if v <= uint64(r) {
				larger |= 1 << k
			}
		}
		UnsetSmaller[r] = smaller
		UnsetLarger[r] = larger
	}
}

// coprimes returns all f in [1, modulo] coprime to modulo, plus the first
// factor of the next rotation so that deltas wrap cleanly.
func coprimes(modulo int64) []int64 {
	var fs []int64
	for f := int64(1); f <= modulo; f++ {
		if gcd(f, modulo) == 1 {
			fs = append(fs, f)
		}
	}
	return append(fs, fs[0]+modulo)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// floorDiv is a true floor division; Go's integer division truncates
// toward zero, which matters for the r*f-7 < 0 case during generation.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func buildWheel(modulo int64, elements []Element, inits []Init) {
	fs := coprimes(modulo)
	spokes := len(fs) - 1

	for c, r := range classValues {
		for j := 0; j < spokes; j++ {
			f, next := fs[j], fs[j+1]
			bit := bitOf[(r*f)%30]
			elements[c*spokes+j] = Element{
				UnsetBit:           ^uint8(1 << bit),
				NextMultipleFactor: uint8(next - f),
				Correct:            uint8(floorDiv(r*next-7, 30) - floorDiv(r*f-7, 30)),
				Next:               uint16(c*spokes + (j+1)%spokes),
			}
		}
	}

	for rem := int64(0); rem < modulo; rem++ {
		j := 0
		for fs[j] < rem {
			j++
		}
		inits[rem] = Init{
			NextMultipleFactor: uint8(fs[j] - rem),
			WheelIndex:         uint8(j % spokes),
		}
	}
}

// Class returns the residue class index of a prime above 5.
func Class(prime uint64) uint64 {
	return uint64(classOf[prime%30])
}

// BitValue returns the value offset represented by bit k of a sieve byte.
func BitValue(k int) uint64 {
	return bitValues[k]
}

// ByteIndex returns the global sieve byte holding the value v, for v >= 7.
func ByteIndex(v uint64) uint64 {
	return (v - 7) / NumbersPerByte
}

// BitPos returns the bit position of a value coprime to 30.
func BitPos(v uint64) int {
	return int(bitOf[v%NumbersPerByte])
}
