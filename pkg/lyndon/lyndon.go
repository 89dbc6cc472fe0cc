// Package lyndon derives the l-mer of a k-mer: the necklace of its
// (2K-1)-bit canonical form.
//
// For odd K the least significant bit of a canonical k-mer is a fixed
// function of the remaining bits, so dropping it loses nothing and
// leaves an odd-length bit-string on which rotation acts freely outside
// trivial orbits. The l-mer is the rotation minimum of that string and
// is shared by a k-mer and its reverse complement.
package lyndon

import (
	"github.com/kmerlab/lmer/pkg/kmer"
	"github.com/kmerlab/lmer/pkg/necklace"
)

// Lmer returns the l-mer of m.
func Lmer[T kmer.Word](m kmer.Kmer[T]) T {
	return necklace.Necklace(m.Canonical().Int()>>1, 2*m.K()-1)
}

// LmerIndex returns the l-mer together with the rotation offset: the
// number of left rotations taking the dropped-parity canonical form to
// its necklace. The pair identifies the canonical form exactly.
func LmerIndex[T kmer.Word](m kmer.Kmer[T]) (T, int) {
	return necklace.NecklaceIndex(m.Canonical().Int()>>1, 2*m.K()-1)
}
