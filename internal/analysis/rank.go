package analysis

import (
	"sort"

	"github.com/joescharf/revscore/internal/models"
)

// The Rank functions sort a copy best-first. The sort is stable and the
// inputs are expected in lexicographic candidate order, so ties keep that order.

// RankBias orders by signed difference, strictest self-review first.
func RankBias(in []models.Comparison) []models.Comparison {
	out := append([]models.Comparison(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Diff > out[j].Diff })
	return out
}

// RankSecurity orders by security score, highest first.
func RankSecurity(in []models.SecurityScore) []models.SecurityScore {
	out := append([]models.SecurityScore(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// RankOverall orders by composite score, highest first.
func RankOverall(in []models.OverallScore) []models.OverallScore {
	out := append([]models.OverallScore(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Composite > out[j].Composite })
	return out
}

// Stricter returns the ranked comparisons whose self-review found more.
func Stricter(ranked []models.Comparison) []models.Comparison {
	return filterBias(ranked, models.BiasStricter)
}

// Lenient returns the ranked comparisons whose self-review found less.
func Lenient(ranked []models.Comparison) []models.Comparison {
	return filterBias(ranked, models.BiasLenient)
}

func filterBias(ranked []models.Comparison, b models.Bias) []models.Comparison {
	var out []models.Comparison
	for _, c := range ranked {
		if c.Bias == b {
			out = append(out, c)
		}
	}
	return out
}

// Top returns at most n leading entries of a ranking.
func Top(ranked []models.OverallScore, n int) []models.OverallScore {
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Bottom returns at most n trailing entries of a ranking, still best-first.
func Bottom(ranked []models.OverallScore, n int) []models.OverallScore {
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[len(ranked)-n:]
}
