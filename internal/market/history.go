package market

import (
	"math"
	"math/rand"
)

// PriceHistory is a mock YES price series of n points that ends at the
// current chance. Each earlier point moves by at most two cents and stays
// inside [0.01, 0.99].
func PriceHistory(chance, n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	p := float64(chance) / 100
	for i := n - 1; i >= 0; i-- {
		out[i] = cents(p)
		p += (rng.Float64()*2 - 1) * 0.02
		p = math.Max(0.01, math.Min(0.99, p))
	}
	return out
}
