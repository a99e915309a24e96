package evaluation

import (
	"math"

	"hrms/internal/domain/structure"
)

// ComputeFinalScore takes the submitted subgroup scores and the catalog's
// subgroup-to-weight mapping and returns the weighted average rounded to
// two decimals, plus the number of entries skipped because their subgroup
// is not in the catalog. No resolvable entries yields exactly 0.00.
func ComputeFinalScore(scores []SubGroupScore, weights []structure.SubGroupWeight) (float64, int) {
	weightBySubGroup := make(map[int64]float64, len(weights))
	for _, w := range weights {
		weightBySubGroup[w.SubGroupID] = w.Weight
	}

	var sumWeighted, sumWeight float64
	skipped := 0
	for _, score := range scores {
		weight, ok := weightBySubGroup[score.SubGroupID]
		if !ok {
			skipped++
			continue
		}
		sumWeighted += float64(score.ScoreValue) * weight
		sumWeight += weight
	}

	if sumWeight == 0 {
		return 0, skipped
	}
	return round2(sumWeighted / sumWeight), skipped
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
