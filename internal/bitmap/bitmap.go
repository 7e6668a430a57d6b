// Package bitmap consumes finished sieve segments: population counts,
// k-tuplet pattern matching and set-bit enumeration. A segment is the byte
// layout defined by internal/wheel (30 numbers per byte, one bit per
// residue coprime to 30).
package bitmap

import (
	"encoding/binary"
	"math/bits"

	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

// MinTuplet and MaxTuplet bound the supported constellation sizes
// (twins .. sextuplets).
const (
	MinTuplet = 2
	MaxTuplet = 6
)

// tupletMasks lists, per constellation size k (index k-2), every in-byte
// bit pattern that forms a prime k-tuplet. All admissible constellations
// up to sextuplets fit inside one sieve byte: their span never exceeds 16
// and the residues line up so that no pattern straddles a byte boundary.
var tupletMasks = [5][]uint8{
	{0x06, 0x18, 0xc0},       // twins (p, p+2)
	{0x07, 0x0e, 0x1c, 0x38}, // triplets (p, p+2|4, p+6)
	{0x1e},                   // quadruplets (p, p+2, p+6, p+8)
	{0x1f, 0x3e},             // quintuplets (p, p+2|4, .., p+12)
	{0x3f},                   // sextuplets (p, p+4, .., p+16)
}

// tupletCounts[k-2][b] is the number of k-tuplets contained in a byte with
// value b, built once at init in the spirit of a popcount table.
var tupletCounts [5][256]uint8

func init() {
	for t, masks := range tupletMasks {
		for b := 0; b < 256; b++ {
			var n uint8
			for _, m := range masks {
				if uint8(b)&m == m {
					n++
				}
			}
			tupletCounts[t][b] = n
		}
	}
}

// PopCount returns the number of set bits in seg. len(seg) must be a
// multiple of 8; the caller zero-pads the tail of a truncated segment.
func PopCount(seg []byte) uint64 {
	var n uint64
	for i := 0; i+8 <= len(seg); i += 8 {
		n += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(seg[i:])))
	}
	return n
}

// CountTuplets returns the number of prime k-tuplets whose members all lie
// within seg.
func CountTuplets(seg []byte, k int) uint64 {
	table := &tupletCounts[k-MinTuplet]
	var n uint64
	for _, b := range seg {
		n += uint64(table[b])
	}
	return n
}

// ForEachPrime calls fn with the value of every set bit in ascending
// order. base is the global byte index of seg[0]. len(seg) must be a
// multiple of 8 with any truncated tail zeroed. Returns false if fn
// stopped the iteration.
func ForEachPrime(seg []byte, base uint64, fn func(prime uint64) bool) bool {
	for i := 0; i+8 <= len(seg); i += 8 {
		word := binary.LittleEndian.Uint64(seg[i:])
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			word &= word - 1
			v := (base+uint64(i)+uint64(bit>>3))*wheel.NumbersPerByte + wheel.BitValue(bit&7)
			if !fn(v) {
				return false
			}
		}
	}
	return true
}

// ForEachTuplet calls fn with the members of every k-tuplet found in seg,
// in ascending order of first member. The members slice is reused between
// calls. Returns false if fn stopped the iteration.
func ForEachTuplet(seg []byte, base uint64, k int, fn func(members []uint64) bool) bool {
	masks := tupletMasks[k-MinTuplet]
	var members [MaxTuplet]uint64
	for i, b := range seg {
		if tupletCounts[k-MinTuplet][b] == 0 {
			continue
		}
		for _, m := range masks {
			if b&m != m {
				continue
			}
			low := (base + uint64(i)) * wheel.NumbersPerByte
			n := 0
			for bit := 0; bit < 8; bit++ {
				if m&(1<<bit) != 0 {
					members[n] = low + wheel.BitValue(bit)
					n++
				}
			}
			if !fn(members[:n]) {
				return false
			}
		}
	}
	return true
}
