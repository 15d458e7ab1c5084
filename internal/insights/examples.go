package insights

import (
	"regexp"
	"strings"
)

// Caps on mined concrete examples.
const (
	maxExamplesPerBlock  = 3
	maxExamplesPerReport = 5
)

// Patterns identifying concrete, quantified claims in reasoning text.
var (
	currencyPattern = regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d+)?\s?(?:[kKmMbB]\b|million|billion|thousand)?`)
	percentPattern  = regexp.MustCompile(`\b\d+(?:\.\d+)?%`)
	quantityPattern = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\b|\b\d{4,}\b|\b\d+(?:\.\d+)?[kKmMbB]\b|\b\d+\+`)
)

// knownOrganizations are name tokens that mark a sentence as citing a
// recognizable employer or platform.
var knownOrganizations = []string{
	"Google", "Amazon", "Microsoft", "Meta", "Apple", "Netflix",
	"IBM", "Oracle", "Stripe", "Uber", "Airbnb", "Salesforce",
	"Intel", "NVIDIA", "AWS", "Shopify", "Spotify",
}

// ExtractExamples mines sentences containing currency amounts, percentages,
// large countable quantities, or known organization names from one reasoning
// block. At most maxExamplesPerBlock sentences are returned, in order.
func ExtractExamples(reasoning string) []string {
	var examples []string
	for _, sentence := range splitSentences(reasoning) {
		if len(examples) >= maxExamplesPerBlock {
			break
		}
		if isConcreteExample(sentence) {
			examples = append(examples, sentence)
		}
	}
	return examples
}

// CapExamples deduplicates mined examples and enforces the report-level cap.
func CapExamples(examples []string) []string {
	seen := make(map[string]bool, len(examples))
	var capped []string
	for _, ex := range examples {
		key := strings.ToLower(strings.TrimSpace(ex))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		capped = append(capped, strings.TrimSpace(ex))
		if len(capped) >= maxExamplesPerReport {
			break
		}
	}
	return capped
}

func isConcreteExample(sentence string) bool {
	if currencyPattern.MatchString(sentence) ||
		percentPattern.MatchString(sentence) ||
		quantityPattern.MatchString(sentence) {
		return true
	}
	for _, org := range knownOrganizations {
		if strings.Contains(sentence, org) {
			return true
		}
	}
	return false
}
