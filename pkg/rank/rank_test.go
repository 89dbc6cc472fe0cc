package rank

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmerlab/lmer/pkg/kmer"
	"github.com/kmerlab/lmer/pkg/lyndon"
	"github.com/kmerlab/lmer/pkg/necklace"
)

// bruteNecklaces lists all rotation minima of length n by scanning the
// whole space.
func bruteNecklaces(n int) []uint32 {
	var reps []uint32
	for x := uint32(0); x < 1<<n; x++ {
		if necklace.Necklace(x, n) == x {
			reps = append(reps, x)
		}
	}
	return reps
}

func TestEnumerationMatchesBruteForce(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 9, 13, 16} {
		r, err := New[uint32](n)
		require.NoError(t, err)
		want := bruteNecklaces(n)
		require.Equal(t, len(want), r.Len(), "n=%d", n)
		for i, x := range want {
			require.Equal(t, x, r.Unrank(uint64(i)), "n=%d i=%d", n, i)
		}
	}
}

func TestRankBijectiveAndOrdered(t *testing.T) {
	for _, n := range []int{5, 9, 13} {
		r, err := New[uint32](n)
		require.NoError(t, err)
		require.Equal(t, Count(n), uint64(r.Len()), "n=%d", n)
		prev := uint64(0)
		for i, x := range bruteNecklaces(n) {
			got := r.Rank(x)
			require.Equal(t, uint64(i), got, "n=%d x=%b", n, x)
			if i > 0 {
				require.Greater(t, got, prev)
			}
			prev = got
			require.Equal(t, x, r.Unrank(got))
		}
	}
}

func TestOffsetsMatchWeightHistogram(t *testing.T) {
	for _, n := range []int{5, 9, 12, 13} {
		r, err := New[uint32](n)
		require.NoError(t, err)
		hist := make([]uint64, n+1)
		for _, x := range bruteNecklaces(n) {
			hist[Weight(x)]++
		}
		var cum uint64
		for w := 0; w <= n; w++ {
			require.Equal(t, cum, r.Offset(w), "n=%d w=%d", n, w)
			require.Equal(t, hist[w], CountWeight(n, w), "n=%d w=%d", n, w)
			cum += hist[w]
		}
		require.Equal(t, cum, r.Offset(n+1))
	}
}

func TestCountClosedForm(t *testing.T) {
	// Sloane A000031: counts of binary necklaces of length n.
	want := map[int]uint64{
		1:  2,
		2:  3,
		3:  4,
		4:  6,
		5:  8,
		6:  14,
		7:  20,
		8:  36,
		9:  60,
		13: 632,
		21: 99880,
		29: 18512792,
		61: 37800705069076952,
	}
	for n, c := range want {
		require.Equal(t, c, Count(n), "n=%d", n)
	}
}

// TestRankLmers runs the full pipeline at K=7: every ranked l-mer lies
// in the dense range and equal l-mers get equal ranks.
func TestRankLmers(t *testing.T) {
	const k = 7
	const n = 2*k - 1
	r, err := New[uint32](n)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(31, 32))
	for _, m := range kmer.Random[uint32](rng, k, 50000) {
		l := lyndon.Lmer(m)
		got := r.Rank(l)
		require.Less(t, got, uint64(r.Len()))
		require.Equal(t, l, r.Unrank(got))
		require.Equal(t, got, r.Rank(lyndon.Lmer(m.RevComp())))
	}
}

func TestNewRejectsBadLengths(t *testing.T) {
	_, err := New[uint32](0)
	require.Error(t, err)
	_, err = New[uint8](9)
	require.Error(t, err)
	_, err = New[uint64](MaxBits + 1)
	require.Error(t, err)
}

func BenchmarkRank(b *testing.B) {
	r, err := New[uint32](25)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(41, 42))
	lmers := make([]uint32, 1024)
	for i := range lmers {
		lmers[i] = necklace.Necklace(uint32(rng.Uint64())&(1<<25-1), 25)
	}
	b.ResetTimer()
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += r.Rank(lmers[i&1023])
	}
	_ = sink
}
