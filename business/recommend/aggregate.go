package recommend

import (
	"sort"

	"youthBanking/domain"
)

// Aggregate counts how many distinct neighbors hold each product of the
// given kind, drops products in exclude, and keeps the topN most common.
// Equal counts are ordered by product code.
func Aggregate(neighborIDs []uint, subs []domain.Subscription, exclude map[string]struct{}, kind domain.ProductKind, topN int) []domain.RankedProduct {
	if len(neighborIDs) == 0 {
		return []domain.RankedProduct{}
	}
	if topN <= 0 {
		topN = DefaultTopPerKind
	}

	neighbors := make(map[uint]struct{}, len(neighborIDs))
	for _, id := range neighborIDs {
		neighbors[id] = struct{}{}
	}

	holders := make(map[string]map[uint]struct{})
	for _, s := range subs {
		if s.Kind != kind {
			continue
		}
		if _, ok := neighbors[s.UserID]; !ok {
			continue
		}
		if _, skip := exclude[s.ProductCode]; skip {
			continue
		}
		users, ok := holders[s.ProductCode]
		if !ok {
			users = make(map[uint]struct{})
			holders[s.ProductCode] = users
		}
		users[s.UserID] = struct{}{}
	}

	ranked := make([]domain.RankedProduct, 0, len(holders))
	for code, users := range holders {
		ranked = append(ranked, domain.RankedProduct{
			Code:  code,
			Kind:  kind,
			Count: len(users),
		})
	}

	sortRanked(ranked)

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Merge combines per-kind lists and keeps the topM overall.
func Merge(topM int, lists ...[]domain.RankedProduct) []domain.RankedProduct {
	if topM <= 0 {
		topM = DefaultTopTotal
	}

	var merged []domain.RankedProduct
	for _, l := range lists {
		merged = append(merged, l...)
	}
	if merged == nil {
		return []domain.RankedProduct{}
	}

	sortRanked(merged)

	if len(merged) > topM {
		merged = merged[:topM]
	}
	return merged
}

func sortRanked(items []domain.RankedProduct) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return kindOrder(a.Kind) < kindOrder(b.Kind)
	})
}

func kindOrder(k domain.ProductKind) int {
	for i, v := range domain.ProductKinds {
		if v == k {
			return i
		}
	}
	return len(domain.ProductKinds)
}

func excludeSet(subs []domain.Subscription) map[string]struct{} {
	set := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		set[s.ProductCode] = struct{}{}
	}
	return set
}

func codes(ranked []domain.RankedProduct) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Code)
	}
	return out
}
