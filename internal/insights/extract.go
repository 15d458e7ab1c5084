package insights

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jonathan/persona-evaluator/internal/types"
)

// Bucket thresholds: a criterion contributes to strengths when its score is
// high or its sentiment positive, and to concerns only when both the score
// is low and the sentiment negative. Neutral-sentiment criteria are dropped.
const (
	strengthScoreFloor  = 8
	concernScoreCeiling = 5
)

// consensusPersonaFloor is the minimum number of distinct personas that must
// touch a theme for it to count as cross-persona consensus.
const consensusPersonaFloor = 3

// Extract mines qualitative insights from every successful persona result.
// Pure and single-threaded; runs once after all outcomes are resolved.
func Extract(processed []types.ProcessedPersonaResult) *types.QualitativeInsights {
	var strengths, concerns []types.ThemedInsight
	var rawExamples []string
	themeScores := make(map[string]map[string][]float64) // theme -> persona -> scores
	var themeOrder []string

	for i := range processed {
		result := &processed[i]
		for _, cs := range result.CriterionScores {
			positive, negative, sentiment := classifySentiment(cs.Reasoning)
			theme := ThemeFor(cs.Name)

			if _, seen := themeScores[theme]; !seen {
				themeScores[theme] = make(map[string][]float64)
				themeOrder = append(themeOrder, theme)
			}
			themeScores[theme][result.PersonaKey] = append(themeScores[theme][result.PersonaKey], float64(cs.Score))

			rawExamples = append(rawExamples, ExtractExamples(cs.Reasoning)...)

			// No lexicon signal at all: the criterion contributes to neither
			// bucket, regardless of its numeric score.
			if positive == 0 && negative == 0 {
				continue
			}

			if cs.Score >= strengthScoreFloor || sentiment == SentimentPositive {
				strengths = append(strengths, types.ThemedInsight{
					Theme:   theme,
					Insight: representativeSentence(cs.Reasoning, positiveLexicon),
					Persona: result.DisplayName,
					Score:   float64(cs.Score),
				})
			}
			if cs.Score <= concernScoreCeiling && sentiment == SentimentNegative {
				concerns = append(concerns, types.ThemedInsight{
					Theme:   theme,
					Insight: representativeSentence(cs.Reasoning, negativeLexicon),
					Persona: result.DisplayName,
					Score:   float64(cs.Score),
				})
			}
		}
	}

	return &types.QualitativeInsights{
		Strengths:        dedupeInsights(strengths, false),
		Concerns:         dedupeInsights(concerns, true),
		SpecificExamples: CapExamples(rawExamples),
		ConsensusThemes:  consensusThemes(themeScores, themeOrder),
	}
}

// representativeSentence picks the sentence with the most lexicon cues of
// the relevant polarity; falls back to the first sentence.
func representativeSentence(reasoning string, lexicon []string) string {
	sentences := splitSentences(reasoning)
	if len(sentences) == 0 {
		return reasoning
	}

	best := sentences[0]
	bestHits := 0
	for _, s := range sentences {
		if hits := lexiconHits(s, lexicon); hits > bestHits {
			best = s
			bestHits = hits
		}
	}
	return best
}

// consensusThemes reports themes mentioned by enough personas, with the
// average score and an agreement label derived from the spread of
// per-persona averages.
func consensusThemes(themeScores map[string]map[string][]float64, themeOrder []string) []types.ThemeConsensus {
	var consensus []types.ThemeConsensus

	for _, theme := range themeOrder {
		personaScores := themeScores[theme]
		if len(personaScores) < consensusPersonaFloor {
			continue
		}

		var personaAverages []float64
		var allScores []float64
		for _, scoresByPersona := range personaScores {
			avg, err := stats.Mean(scoresByPersona)
			if err != nil {
				continue
			}
			personaAverages = append(personaAverages, avg)
			allScores = append(allScores, scoresByPersona...)
		}

		mean, err := stats.Mean(allScores)
		if err != nil {
			continue
		}
		rounded, err := stats.Round(mean, 2)
		if err != nil {
			rounded = mean
		}

		consensus = append(consensus, types.ThemeConsensus{
			Theme:        theme,
			PersonaCount: len(personaScores),
			AverageScore: rounded,
			Consensus:    agreementLabel(personaAverages),
		})
	}

	sort.SliceStable(consensus, func(i, j int) bool {
		return consensus[i].AverageScore > consensus[j].AverageScore
	})
	return consensus
}

// agreementLabel converts the spread of per-persona theme averages into a
// consensus label.
func agreementLabel(personaAverages []float64) string {
	maxAvg, errMax := stats.Max(personaAverages)
	minAvg, errMin := stats.Min(personaAverages)
	if errMax != nil || errMin != nil {
		return "unknown"
	}

	spread := maxAvg - minAvg
	switch {
	case spread <= 1.0:
		return "strong agreement"
	case spread <= 2.0:
		return "moderate agreement"
	default:
		return "split opinions"
	}
}
