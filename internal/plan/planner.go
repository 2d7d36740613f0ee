// Package plan builds the ordered per-trial design for controlled
// (preset) sessions.
package plan

import "math/rand"

// Entry is the design for one trial: the intended movement distance
// and target width. TargetPos and Radius stay nil until the trial
// actually spawns, because placement depends on where the previous
// trial ended.
type Entry struct {
	Distance  float64     `json:"distance"`
	Width     float64     `json:"width"`
	TargetPos *[2]float64 `json:"target_pos,omitempty"`
	Radius    *float64    `json:"radius,omitempty"`
}

// Build returns exactly n entries drawn from the distance x width
// cross-product. Freshly shuffled copies of the full cross-product
// are appended until the plan is long enough, then truncated, so
// every combination appears either floor(n/k) or ceil(n/k) times for
// k combinations. Consecutive repeats of the same combination can
// occur only across shuffle-block boundaries.
func Build(distances, widths []float64, n int, rng *rand.Rand) []Entry {
	if n <= 0 || len(distances) == 0 || len(widths) == 0 {
		return nil
	}

	combos := make([]Entry, 0, len(distances)*len(widths))
	for _, d := range distances {
		for _, w := range widths {
			combos = append(combos, Entry{Distance: d, Width: w})
		}
	}

	out := make([]Entry, 0, n+len(combos))
	for len(out) < n {
		block := make([]Entry, len(combos))
		copy(block, combos)
		rng.Shuffle(len(block), func(i, j int) {
			block[i], block[j] = block[j], block[i]
		})
		out = append(out, block...)
	}
	return out[:n]
}
