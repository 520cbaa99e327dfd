// Package random is the seeded Park-Miller generator the workload pages use
// for their synthetic data, so every page renders the same data on every run.
package random

const (
	multiplier = 16807
	modulus    = 2147483647
)

type Random struct {
	seed int64
}

// New returns a generator for seed. Seeds outside [1, 2^31-2] are reduced
// into that range.
func New(seed int64) *Random {
	seed %= modulus
	if seed < 0 {
		seed += modulus
	}
	if seed == 0 {
		seed = 1
	}

	return &Random{seed: seed}
}

func (r *Random) step() int64 {
	r.seed = r.seed * multiplier % modulus
	return r.seed
}

// Next returns a value in (0, 1).
func (r *Random) Next() float64 {
	return float64(r.step()) / modulus
}

// NextUnit returns a value in [0, 1).
func (r *Random) NextUnit() float64 {
	return float64(r.step()-1) / (modulus - 1)
}

// Intn returns a value in [0, n) derived from Next.
func (r *Random) Intn(n int) int {
	return int(r.Next() * float64(n))
}

// Pick returns a random element of items.
func Pick[T any](r *Random, items []T) T {
	return items[r.Intn(len(items))]
}
