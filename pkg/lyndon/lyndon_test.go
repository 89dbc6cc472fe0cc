package lyndon

import (
	"math/rand/v2"
	"testing"

	"github.com/kmerlab/lmer/pkg/kmer"
	"github.com/kmerlab/lmer/pkg/necklace"
)

// TestLmerStrandInvariant checks lmer(k) == lmer(rev_comp(k)) for every
// 7-mer and a sample of 15-mers.
func TestLmerStrandInvariant(t *testing.T) {
	for x := uint16(0); x < 1<<14; x++ {
		m := kmer.FromInt(7, x)
		if Lmer(m) != Lmer(m.RevComp()) {
			t.Fatalf("lmer differs between strands for %v", m)
		}
	}
	rng := rand.New(rand.NewPCG(21, 22))
	for i := 0; i < 100000; i++ {
		m := kmer.FromInt(15, uint32(rng.Uint64())&(1<<30-1))
		if Lmer(m) != Lmer(m.RevComp()) {
			t.Fatalf("lmer differs between strands for %v", m)
		}
	}
}

// TestLmerIsNecklace checks the l-mer is a fixed point of the one-shot
// reduction.
func TestLmerIsNecklace(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 24))
	for i := 0; i < 20000; i++ {
		m := kmer.FromInt(11, uint32(rng.Uint64())&(1<<22-1))
		l := Lmer(m)
		if got := necklace.Necklace(l, 21); got != l {
			t.Fatalf("lmer %#b is not a necklace (reduces to %#b)", l, got)
		}
	}
}

// TestLmerIndexReconstructs rotates the l-mer back to the canonical
// bit-string.
func TestLmerIndexReconstructs(t *testing.T) {
	rng := rand.New(rand.NewPCG(25, 26))
	for i := 0; i < 20000; i++ {
		m := kmer.FromInt(11, uint32(rng.Uint64())&(1<<22-1))
		l, idx := LmerIndex(m)
		if l != Lmer(m) {
			t.Fatal("LmerIndex and Lmer disagree")
		}
		back := l
		for j := 0; j < idx; j++ {
			back = necklace.RotRight(back, 21)
		}
		if want := m.Canonical().Int() >> 1; back != want {
			t.Fatalf("rotating lmer right %d times gives %#b, want %#b", idx, back, want)
		}
	}
}

func BenchmarkLmer(b *testing.B) {
	rng := rand.New(rand.NewPCG(27, 28))
	kmers := kmer.Random[uint64](rng, 31, 1024)
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += Lmer(kmers[i&1023])
	}
	_ = sink
}
