package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG is a seeded, thread-safe random source for fixtures.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64

	// zipf caches cumulative weights per (n, s).
	zipf map[zipfKey][]float64
}

type zipfKey struct {
	n int
	s float64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
		zipf: make(map[zipfKey][]float64),
	}
}

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Zipf returns a value in [0, n) with P(k) proportional to 1/(k+1)^s.
// Annotation frequencies of real ontologies follow such a power law.
func (r *RNG) Zipf(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cum := r.cumulative(n, s)
	u := r.rand.Float64() * cum[n-1]
	k := sort.SearchFloat64s(cum, u)
	return min(k, n-1)
}

// cumulative returns the running sums of 1/k^s for k in 1..n.
// Caller must hold r.mu.
func (r *RNG) cumulative(n int, s float64) []float64 {
	key := zipfKey{n: n, s: s}
	if cum, ok := r.zipf[key]; ok {
		return cum
	}

	cum := make([]float64, n)
	var total float64
	for k := 1; k <= n; k++ {
		total += 1 / math.Pow(float64(k), s)
		cum[k-1] = total
	}
	r.zipf[key] = cum
	return cum
}
