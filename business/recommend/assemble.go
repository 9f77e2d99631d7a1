package recommend

import "youthBanking/domain"

// Assemble joins ranked products to their display metadata in rank order.
// Products without metadata are dropped.
func Assemble(ranked []domain.RankedProduct, meta map[domain.ProductKind]map[string]domain.ProductMetadata) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		m, ok := meta[r.Kind][r.Code]
		if !ok {
			continue
		}
		out = append(out, domain.Recommendation{
			Product:             m,
			RecommendationCount: r.Count,
			Type:                r.Kind,
		})
	}
	return out
}
