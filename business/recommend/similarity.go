package recommend

import (
	"math"
	"sort"

	"youthBanking/domain"
)

const numFeatures = 3

type featureRange struct {
	min float64
	max float64
}

func (r *featureRange) widen(v float64) {
	if v < r.min {
		r.min = v
	}
	if v > r.max {
		r.max = v
	}
}

// normalize maps v into [0,1]. A degenerate range contributes 0.
func (r featureRange) normalize(v float64) float64 {
	if r.max == r.min {
		return 0
	}
	return (v - r.min) / (r.max - r.min)
}

func features(p domain.UserProfile) [numFeatures]float64 {
	return [numFeatures]float64{
		float64(*p.Age),
		float64(*p.Assets),
		float64(*p.AnnualIncome),
	}
}

// FindSimilarUsers ranks candidates by weighted Euclidean distance to the
// requester over min-max normalized age, assets and income. The requester
// itself and candidates with an incomplete profile are skipped. Ties are
// broken by user id so the result is reproducible.
func FindSimilarUsers(requester domain.UserProfile, candidates []domain.UserProfile, k int, w Weights) ([]domain.SimilarityCandidate, error) {
	if !requester.Complete() {
		return nil, ErrMissingProfileData
	}
	if k <= 0 {
		k = DefaultNeighbors
	}

	eligible := make([]domain.UserProfile, 0, len(candidates))
	seen := make(map[uint]struct{}, len(candidates))
	for _, c := range candidates {
		if c.UserID == requester.UserID || !c.Complete() {
			continue
		}
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}
		eligible = append(eligible, c)
	}

	if len(eligible) == 0 {
		return []domain.SimilarityCandidate{}, nil
	}

	origin := features(requester)
	var ranges [numFeatures]featureRange
	for i, v := range origin {
		ranges[i] = featureRange{min: v, max: v}
	}
	for _, c := range eligible {
		for i, v := range features(c) {
			ranges[i].widen(v)
		}
	}

	var originNorm [numFeatures]float64
	for i, v := range origin {
		originNorm[i] = ranges[i].normalize(v)
	}
	weights := [numFeatures]float64{w.Age, w.Assets, w.Income}

	out := make([]domain.SimilarityCandidate, 0, len(eligible))
	for _, c := range eligible {
		var norm [numFeatures]float64
		var sum float64
		for i, v := range features(c) {
			norm[i] = ranges[i].normalize(v)
			d := norm[i] - originNorm[i]
			sum += weights[i] * d * d
		}

		out = append(out, domain.SimilarityCandidate{
			UserID:     c.UserID,
			NormAge:    norm[0],
			NormAssets: norm[1],
			NormIncome: norm[2],
			Distance:   math.Sqrt(sum),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].UserID < out[j].UserID
	})

	if len(out) > k {
		out = out[:k]
	}

	return out, nil
}

func neighborIDs(neighbors []domain.SimilarityCandidate) []uint {
	ids := make([]uint, 0, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, n.UserID)
	}
	return ids
}
