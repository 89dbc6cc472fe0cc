// Package kmer implements 2-bit packed DNA k-mers.
//
// A k-mer of length K is stored in the low 2K bits of an unsigned word,
// most significant base first. The encoding A=0, C=1, G=2, T=3 is chosen
// so that complementing a base is bitwise inversion of its 2-bit group
// (A↔T is 00↔11, C↔G is 01↔10).
package kmer

import (
	"io"
	"math/bits"
	"math/rand/v2"
)

// Word is the set of unsigned words a k-mer can be packed into.
// The word must have at least 2K bits for a k-mer of length K.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Base is the 2-bit code of a nucleotide: A=0, C=1, G=2, T=3.
type Base uint8

var nucBase [256]uint8

func init() {
	for i := range nucBase {
		nucBase[i] = 0xFF
	}
	nucBase['A'] = 0
	nucBase['C'] = 1
	nucBase['G'] = 2
	nucBase['T'] = 3
}

// FromNuc decodes an upper-case ASCII nucleotide. Any other byte,
// including lower-case acgt, reports false.
func FromNuc(c byte) (Base, bool) {
	b := nucBase[c]
	return Base(b), b != 0xFF
}

// ToNuc returns the ASCII nucleotide for a base. It panics on values
// outside [0, 4).
func (b Base) ToNuc() byte {
	if b >= 4 {
		panic("kmer: invalid base")
	}
	return "ACGT"[b]
}

// wordBits returns the width of T in bits.
func wordBits[T Word]() int {
	switch uint64(^T(0)) {
	case 1<<8 - 1:
		return 8
	case 1<<16 - 1:
		return 16
	case 1<<32 - 1:
		return 32
	default:
		return 64
	}
}

// Kmer is an immutable k-mer of fixed length packed into T.
// The zero value is only meaningful through New.
type Kmer[T Word] struct {
	k int
	x T
}

// New returns the all-A k-mer of length k. It panics if 2k bits do not
// fit in T or k < 1.
func New[T Word](k int) Kmer[T] {
	if k < 1 || 2*k > wordBits[T]() {
		panic("kmer: length does not fit word")
	}
	return Kmer[T]{k: k}
}

// FromInt wraps a packed value as a k-mer of length k.
func FromInt[T Word](k int, x T) Kmer[T] {
	m := New[T](k)
	m.x = x
	return m
}

// Int returns the packed 2K-bit value.
func (m Kmer[T]) Int() T { return m.x }

// K returns the k-mer length in bases.
func (m Kmer[T]) K() int { return m.k }

// Mask returns the 2K-bit mask for this k-mer length.
func (m Kmer[T]) Mask() T { return mask[T](m.k) }

func mask[T Word](k int) T {
	return T(1)<<(2*k) - 1
}

// Extend shifts the k-mer left by one base and ORs in b, without
// masking. It is the fill operation used before a window is complete.
func (m Kmer[T]) Extend(b Base) Kmer[T] {
	m.x = m.x<<2 | T(b)
	return m
}

// Append shifts in b like Extend and drops the base that falls out of
// the 2K-bit window.
func (m Kmer[T]) Append(b Base) Kmer[T] {
	m.x = (m.x<<2 | T(b)) & mask[T](m.k)
	return m
}

// RevComp returns the reverse complement: the 2-bit groups in reverse
// order, each complemented. The complement is a bitwise NOT; the group
// reversal is a byte swap followed by nibble and pair swaps in their
// 0x0F… and 0x33… lanes, then a shift dropping the word's padding bits.
func (m Kmer[T]) RevComp() Kmer[T] {
	w := wordBits[T]()
	x := ^m.x
	x = T(bits.ReverseBytes64(uint64(x)) >> (64 - w))
	one := ^T(0) / 0xFF // 0x0101… lane seed
	x = x>>4&(one*0x0F) | x&(one*0x0F)<<4
	x = x>>2&(one*0x33) | x&(one*0x33)<<2
	m.x = x >> (w - 2*m.k)
	return m
}

// Canonical returns the numerically smaller of the k-mer and its
// reverse complement.
func (m Kmer[T]) Canonical() Kmer[T] {
	if rc := m.RevComp(); rc.x < m.x {
		return rc
	}
	return m
}

// Successors returns the four k-mers obtained by appending each base.
func (m Kmer[T]) Successors() [4]Kmer[T] {
	var s [4]Kmer[T]
	for b := Base(0); b < 4; b++ {
		s[b] = m.Append(b)
	}
	return s
}

// Submers returns the K-M+1 overlapping sub-k-mers of length sub, from the
// most significant position to the least significant.
func (m Kmer[T]) Submers(sub int) []Kmer[T] {
	res := make([]Kmer[T], m.k-sub+1)
	s := m.x
	for i := range res {
		res[m.k-sub-i] = FromInt(sub, s&mask[T](sub))
		s >>= 2
	}
	return res
}

// FromNucs packs the first k valid bases of nucs, skipping anything that
// is not upper-case ACGT. If nucs holds fewer than k valid bases the
// remaining positions stay zero; callers that need validation should use
// a Scanner instead.
func FromNucs[T Word](k int, nucs []byte) Kmer[T] {
	m := New[T](k)
	n := 0
	for _, c := range nucs {
		if n == k {
			break
		}
		if b, ok := FromNuc(c); ok {
			m = m.Extend(b)
			n++
		}
	}
	return m
}

// Nucs renders the k-mer as ASCII nucleotides.
func (m Kmer[T]) Nucs() []byte {
	res := make([]byte, m.k)
	s := m.x
	for i := range res {
		res[m.k-1-i] = Base(s & 0b11).ToNuc()
		s >>= 2
	}
	return res
}

// String implements fmt.Stringer.
func (m Kmer[T]) String() string { return string(m.Nucs()) }

// Scanner streams the k-mers of a byte stream. Bytes that are not
// upper-case ACGT are skipped; the first k-mer is ready once k valid
// bases have been read and each further valid base yields another.
type Scanner[T Word] struct {
	r      io.ByteReader
	cur    Kmer[T]
	filled int
}

// NewScanner returns a scanner producing k-mers of length k from r.
func NewScanner[T Word](k int, r io.ByteReader) *Scanner[T] {
	return &Scanner[T]{r: r, cur: New[T](k)}
}

// Scan advances to the next k-mer. It returns false when the stream
// cannot supply another valid base.
func (s *Scanner[T]) Scan() bool {
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			return false
		}
		b, ok := FromNuc(c)
		if !ok {
			continue
		}
		if s.filled < s.cur.K() {
			s.cur = s.cur.Extend(b)
			s.filled++
			if s.filled < s.cur.K() {
				continue
			}
		} else {
			s.cur = s.cur.Append(b)
		}
		return true
	}
}

// Kmer returns the k-mer produced by the last successful Scan.
func (s *Scanner[T]) Kmer() Kmer[T] { return s.cur }

// Random returns n k-mers drawn from a rolling window over n+k-1
// uniformly random bases.
func Random[T Word](rng *rand.Rand, k, n int) []Kmer[T] {
	res := make([]Kmer[T], 0, n)
	m := New[T](k)
	for i := 0; i < n+k-1; i++ {
		b := Base(rng.IntN(4))
		if i < k-1 {
			m = m.Extend(b)
			continue
		}
		m = m.Append(b)
		res = append(res, m)
	}
	return res
}
