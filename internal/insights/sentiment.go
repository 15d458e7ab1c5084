// Package insights mines qualitative signal from persona reasoning text:
// sentiment, coarse themes, concrete examples, and cross-persona consensus.
package insights

import "strings"

// Sentiment is the lexicon-derived polarity of a reasoning block.
type Sentiment int

const (
	// SentimentNeutral covers blocks with no lexicon hits or a tie.
	SentimentNeutral Sentiment = iota
	SentimentPositive
	SentimentNegative
)

// positiveLexicon and negativeLexicon are the fixed word lists sentiment
// classification counts against. Matching is whole-word, case-insensitive.
var positiveLexicon = []string{
	"excellent", "strong", "impressive", "outstanding", "exceptional",
	"proven", "skilled", "deep", "extensive", "solid", "robust",
	"demonstrated", "successful", "effective", "innovative", "thorough",
	"clear", "well-suited", "accomplished", "expert",
}

var negativeLexicon = []string{
	"weak", "lacking", "limited", "missing", "concern", "concerning",
	"insufficient", "unclear", "shallow", "poor", "gap", "gaps",
	"outdated", "vague", "thin", "questionable", "absent", "minimal",
	"risky", "underwhelming",
}

// classifySentiment counts positive and negative lexicon occurrences in the
// text and returns the counts with the resulting polarity. A tie, including
// zero hits on both lists, is neutral.
func classifySentiment(text string) (positive, negative int, sentiment Sentiment) {
	words := tokenizeWords(text)
	for _, w := range words {
		if lexiconContains(positiveLexicon, w) {
			positive++
		}
		if lexiconContains(negativeLexicon, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		sentiment = SentimentPositive
	case negative > positive:
		sentiment = SentimentNegative
	default:
		sentiment = SentimentNeutral
	}
	return positive, negative, sentiment
}

// lexiconHits counts how many lexicon words appear in the sentence. Used to
// pick the representative insight sentence.
func lexiconHits(sentence string, lexicon []string) int {
	hits := 0
	for _, w := range tokenizeWords(sentence) {
		if lexiconContains(lexicon, w) {
			hits++
		}
	}
	return hits
}

func lexiconContains(lexicon []string, word string) bool {
	for _, entry := range lexicon {
		if word == entry {
			return true
		}
	}
	return false
}

// tokenizeWords lowercases and strips punctuation from the text's words.
func tokenizeWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// splitSentences splits a reasoning block into sentences on terminal
// punctuation. Good enough for model prose; no abbreviation handling.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
