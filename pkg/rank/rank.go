// Package rank maps binary necklaces of a fixed length n onto the dense
// range [0, Count(n)), preserving their integer order.
//
// The ranker enumerates every necklace representative once at
// construction (the classical FKM successor rule yields them in
// increasing order) and answers queries by binary search. The table
// costs O(2^n/n) words, which is practical up to n of about 30, the
// ranked pipelines for small K. The cumulative per-weight counts come
// from the closed-form necklace counting formula and double as a
// construction self-check.
package rank

import (
	"fmt"
	"math/bits"
	"slices"
)

// Uint is the set of words a necklace can be stored in.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MaxBits is the largest necklace length the ranker will build a table
// for. Above it the table would not fit in memory.
const MaxBits = 32

func wordBits[T Uint]() int {
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

// Ranker ranks necklaces of length n. It is built once, is read-only
// afterwards, and is safe to share between goroutines.
type Ranker[T Uint] struct {
	n    int
	reps []T
	cum  []uint64 // cum[w] = necklaces with popcount < w
}

// New builds a ranker for necklaces of length n.
func New[T Uint](n int) (*Ranker[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("rank: length %d out of range", n)
	}
	if n > wordBits[T]() {
		return nil, fmt.Errorf("rank: length %d exceeds word width %d", n, wordBits[T]())
	}
	if n > MaxBits {
		return nil, fmt.Errorf("rank: length %d exceeds the %d-bit table limit", n, MaxBits)
	}
	r := &Ranker[T]{n: n, reps: enumerate[T](n)}
	if uint64(len(r.reps)) != Count(n) {
		panic("rank: enumeration disagrees with the counting formula")
	}
	r.cum = make([]uint64, n+2)
	for w := 0; w <= n; w++ {
		r.cum[w+1] = r.cum[w] + CountWeight(n, w)
	}
	if r.cum[n+1] != uint64(len(r.reps)) {
		panic("rank: per-weight counts disagree with the enumeration")
	}
	return r, nil
}

// enumerate generates all necklace representatives of length n in
// increasing order with the FKM successor rule: find the last zero,
// set it, extend periodically, and keep the word when the period
// divides n.
func enumerate[T Uint](n int) []T {
	a := make([]uint8, n+1)
	reps := []T{0}
	for {
		i := n
		for i > 0 && a[i] == 1 {
			i--
		}
		if i == 0 {
			return reps
		}
		a[i] = 1
		for j := i + 1; j <= n; j++ {
			a[j] = a[j-i]
		}
		if n%i == 0 {
			var v T
			for j := 1; j <= n; j++ {
				v = v<<1 | T(a[j])
			}
			reps = append(reps, v)
		}
	}
}

// N returns the necklace length.
func (r *Ranker[T]) N() int { return r.n }

// Len returns the number of necklaces of length n.
func (r *Ranker[T]) Len() int { return len(r.reps) }

// Rank returns the dense index of the necklace x. The argument is
// assumed canonical; for a non-necklace the result is unspecified and
// no validation happens here.
func (r *Ranker[T]) Rank(x T) uint64 {
	pos, _ := slices.BinarySearch(r.reps, x)
	return uint64(pos)
}

// Unrank returns the necklace with dense index i.
func (r *Ranker[T]) Unrank(i uint64) T { return r.reps[i] }

// Offset returns the number of necklaces with popcount strictly less
// than w, the base of the weight-w stratum.
func (r *Ranker[T]) Offset(w int) uint64 {
	if w < 0 {
		return 0
	}
	if w > r.n+1 {
		w = r.n + 1
	}
	return r.cum[w]
}

// Weight returns the popcount of x.
func Weight[T Uint](x T) int { return bits.OnesCount64(uint64(x)) }

// Count returns the number of binary necklaces of length n:
// (1/n) Σ_{d|n} φ(n/d) 2^d.
func Count(n int) uint64 {
	var total uint64
	for d := 1; d <= n; d++ {
		if n%d == 0 {
			total += phi(n/d) << d
		}
	}
	return total / uint64(n)
}

// CountWeight returns the number of binary necklaces of length n with
// exactly w ones: (1/n) Σ_{d | gcd(n,w)} φ(d) C(n/d, w/d).
func CountWeight(n, w int) uint64 {
	if w < 0 || w > n {
		return 0
	}
	g := n
	if w > 0 {
		g = gcd(n, w)
	}
	var total uint64
	for d := 1; d <= g; d++ {
		if g%d == 0 {
			total += phi(d) * binom(n/d, w/d)
		}
	}
	return total / uint64(n)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func phi(m int) uint64 {
	res := m
	for p := 2; p*p <= m; p++ {
		if m%p == 0 {
			res -= res / p
			for m%p == 0 {
				m /= p
			}
		}
	}
	if m > 1 {
		res -= res / m
	}
	return uint64(res)
}

// binom computes C(a, b) additively; exact in uint64 for a <= 64.
func binom(a, b int) uint64 {
	if b < 0 || b > a {
		return 0
	}
	row := make([]uint64, a+1)
	row[0] = 1
	for i := 1; i <= a; i++ {
		for j := i; j > 0; j-- {
			row[j] += row[j-1]
		}
	}
	return row[b]
}
