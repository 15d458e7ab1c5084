// Package classify assigns a candidate's ranked priority keywords to persona
// domains using lexical similarity, producing per-persona context snippets
// for prompt construction.
package classify

import (
	"fmt"
	"strings"

	"github.com/jonathan/persona-evaluator/internal/personas"
)

// similarityThreshold is the minimum word-substring containment ratio for a
// keyword to be routed to a domain. Keywords below it for every domain are
// dropped from prompt context.
const similarityThreshold = 0.25

// RankedKeyword is one keyword-to-score pair from the upstream keyword
// ranking collaborator.
type RankedKeyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// Assignment records one keyword routed to one persona domain.
type Assignment struct {
	PersonaKey string
	Keyword    RankedKeyword
	Similarity float64
}

// AssignKeywords routes each keyword to the persona domain with the highest
// similarity, if that similarity clears the threshold. A keyword lands in at
// most one domain; ties resolve to the first-declared persona (strict
// greater-than on the running maximum).
func AssignKeywords(keywords []RankedKeyword, registry *personas.Registry) []Assignment {
	var assignments []Assignment

	for _, kw := range keywords {
		bestKey := ""
		bestSim := 0.0
		for _, p := range registry.Enabled() {
			sim := domainSimilarity(kw.Keyword, p.DomainKeywords)
			if sim > bestSim {
				bestSim = sim
				bestKey = p.Key
			}
		}
		if bestKey != "" && bestSim >= similarityThreshold {
			assignments = append(assignments, Assignment{
				PersonaKey: bestKey,
				Keyword:    kw,
				Similarity: bestSim,
			})
		}
	}

	return assignments
}

// BuildDomainContexts converts assignments into per-persona prompt snippets.
// Personas with no routed keywords are absent from the map.
func BuildDomainContexts(assignments []Assignment) map[string]string {
	grouped := make(map[string][]Assignment)
	var order []string
	for _, a := range assignments {
		if _, seen := grouped[a.PersonaKey]; !seen {
			order = append(order, a.PersonaKey)
		}
		grouped[a.PersonaKey] = append(grouped[a.PersonaKey], a)
	}

	contexts := make(map[string]string, len(grouped))
	for _, key := range order {
		var parts []string
		for _, a := range grouped[key] {
			parts = append(parts, fmt.Sprintf("%s (priority %.2f)", a.Keyword.Keyword, a.Keyword.Score))
		}
		contexts[key] = "Priority keywords routed to your domain: " + strings.Join(parts, ", ")
	}
	return contexts
}

// domainSimilarity is the best similarity between the keyword and any
// reference keyword in the domain's set.
func domainSimilarity(keyword string, references []string) float64 {
	best := 0.0
	for _, ref := range references {
		if sim := Similarity(keyword, ref); sim > best {
			best = sim
		}
	}
	return best
}

// Similarity computes a word-substring containment ratio between two phrases:
// the number of word pairs where one word contains the other, normalized by
// the longer phrase's word count. This is a cheap lexical stand-in for an
// embedding distance.
func Similarity(a, b string) float64 {
	aTokens := tokenize(a)
	bTokens := tokenize(b)
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0.0
	}

	matched := 0
	for _, at := range aTokens {
		for _, bt := range bTokens {
			if strings.Contains(at, bt) || strings.Contains(bt, at) {
				matched++
				break
			}
		}
	}

	denom := len(aTokens)
	if len(bTokens) > denom {
		denom = len(bTokens)
	}
	return float64(matched) / float64(denom)
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:()[]\"'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
