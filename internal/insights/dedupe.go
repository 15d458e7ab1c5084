package insights

import (
	"sort"

	"github.com/jonathan/persona-evaluator/internal/types"
)

// duplicateJaccardThreshold marks two insights as near-duplicates when their
// bag-of-words Jaccard similarity exceeds it.
const duplicateJaccardThreshold = 0.7

// maxInsightsPerBucket caps each strengths/concerns bucket.
const maxInsightsPerBucket = 5

// JaccardSimilarity computes token-set overlap between two insight texts.
func JaccardSimilarity(a, b string) float64 {
	aSet := tokenSet(a)
	bSet := tokenSet(b)
	if len(aSet) == 0 || len(bSet) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range aSet {
		if bSet[token] {
			intersection++
		}
	}
	union := len(aSet) + len(bSet) - intersection
	return float64(intersection) / float64(union)
}

// dedupeInsights suppresses near-duplicate insights, keeping the
// higher-scoring of any duplicate pair, and caps the bucket. Ascending
// buckets (concerns) surface the lowest scores first; descending buckets
// (strengths) the highest.
func dedupeInsights(insights []types.ThemedInsight, ascending bool) []types.ThemedInsight {
	// Score-descending pass so the higher-scoring duplicate survives.
	sorted := make([]types.ThemedInsight, len(insights))
	copy(sorted, insights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var kept []types.ThemedInsight
	for _, candidate := range sorted {
		duplicate := false
		for _, existing := range kept {
			if JaccardSimilarity(candidate.Insight, existing.Insight) > duplicateJaccardThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}

	if ascending {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Score < kept[j].Score
		})
	}
	if len(kept) > maxInsightsPerBucket {
		kept = kept[:maxInsightsPerBucket]
	}
	return kept
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range tokenizeWords(text) {
		set[w] = true
	}
	return set
}
