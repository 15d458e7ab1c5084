// Package report renders a completed evaluation into a markdown document.
package report

import (
	"fmt"
	"strings"

	"github.com/jonathan/persona-evaluator/internal/types"
)

// Render produces the full markdown report for a run. Pure function of its
// inputs: the same composite and results always yield byte-identical output.
func Render(candidateID string, composite *types.CompositeResult, processed []types.ProcessedPersonaResult) string {
	var b strings.Builder

	writeHeader(&b, candidateID, composite)
	writePersonaBreakdown(&b, composite, processed)
	if composite.Insights != nil {
		writeInsights(&b, composite.Insights)
	}
	writeRecommendations(&b, processed)
	writeMissingPersonas(&b, composite.MissingPersonas)

	return b.String()
}

func writeHeader(b *strings.Builder, candidateID string, composite *types.CompositeResult) {
	b.WriteString("# Candidate Evaluation Report\n\n")
	if candidateID != "" {
		fmt.Fprintf(b, "**Candidate:** %s\n\n", candidateID)
	}
	fmt.Fprintf(b, "**Overall Score:** %.2f / 10\n", composite.WeightedScore)
	fmt.Fprintf(b, "**Assessment:** %s\n", composite.AssessmentTier)
	fmt.Fprintf(b, "**Recommendation:** %s\n\n", composite.Recommendation)
}

func writePersonaBreakdown(b *strings.Builder, composite *types.CompositeResult, processed []types.ProcessedPersonaResult) {
	b.WriteString("## Persona Breakdown\n\n")
	b.WriteString("| Persona | Criterion Scores | Average | Weight | Contribution |\n")
	b.WriteString("|---------|------------------|---------|--------|--------------|\n")
	for i := range processed {
		r := &processed[i]
		fmt.Fprintf(b, "| %s | %s | %.2f | %.2f | %.2f |\n",
			r.DisplayName, rawScoreCell(r.CriterionScores),
			r.RecomputedAverage, r.Weight, r.RecomputedAverage*r.Weight)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "**Consensus:** %s (spread %.2f between %s and %s)\n\n",
		composite.ConsensusLevel, composite.VarianceAcrossPersonas,
		composite.StrongestPersona, composite.WeakestPersona)

	for i := range processed {
		r := &processed[i]
		fmt.Fprintf(b, "### %s (%.2f)\n\n", r.DisplayName, r.RecomputedAverage)
		for _, cs := range r.CriterionScores {
			fmt.Fprintf(b, "- **%s** (%d/10): %s\n", cs.Name, cs.Score, cs.Reasoning)
		}
		b.WriteString("\n")
	}
}

// rawScoreCell joins the persona's criterion scores into one table cell,
// e.g. "9, 8" in criterion declaration order.
func rawScoreCell(scores []types.CriterionScore) string {
	if len(scores) == 0 {
		return "-"
	}
	parts := make([]string, len(scores))
	for i, cs := range scores {
		parts[i] = fmt.Sprintf("%d", cs.Score)
	}
	return strings.Join(parts, ", ")
}

func writeInsights(b *strings.Builder, insights *types.QualitativeInsights) {
	if len(insights.Strengths) > 0 {
		b.WriteString("## Key Strengths\n\n")
		for _, s := range insights.Strengths {
			fmt.Fprintf(b, "- [%s] %s (%s, %.0f/10)\n", s.Theme, s.Insight, s.Persona, s.Score)
		}
		b.WriteString("\n")
	}

	if len(insights.Concerns) > 0 {
		b.WriteString("## Key Concerns\n\n")
		for _, c := range insights.Concerns {
			fmt.Fprintf(b, "- [%s] %s (%s, %.0f/10)\n", c.Theme, c.Insight, c.Persona, c.Score)
		}
		b.WriteString("\n")
	}

	if len(insights.SpecificExamples) > 0 {
		b.WriteString("## Specific Examples\n\n")
		for _, e := range insights.SpecificExamples {
			fmt.Fprintf(b, "- %s\n", e)
		}
		b.WriteString("\n")
	}

	if len(insights.ConsensusThemes) > 0 {
		b.WriteString("## Consensus Themes\n\n")
		for _, t := range insights.ConsensusThemes {
			fmt.Fprintf(b, "- **%s**: %.2f average across %d personas (%s)\n",
				t.Theme, t.AverageScore, t.PersonaCount, t.Consensus)
		}
		b.WriteString("\n")
	}
}

func writeRecommendations(b *strings.Builder, processed []types.ProcessedPersonaResult) {
	withRecs := 0
	for i := range processed {
		if processed[i].Recommendation != "" {
			withRecs++
		}
	}
	if withRecs == 0 {
		return
	}

	b.WriteString("## Persona Recommendations\n\n")
	for i := range processed {
		r := &processed[i]
		if r.Recommendation == "" {
			continue
		}
		fmt.Fprintf(b, "- **%s**: %s\n", r.DisplayName, r.Recommendation)
	}
	b.WriteString("\n")
}

func writeMissingPersonas(b *strings.Builder, missing []types.MissingPersona) {
	if len(missing) == 0 {
		return
	}

	b.WriteString("## Excluded Personas\n\n")
	b.WriteString("The following personas produced no usable evaluation and were excluded from the composite score:\n\n")
	for _, m := range missing {
		fmt.Fprintf(b, "- **%s**: %s\n", m.PersonaKey, m.Reason)
	}
	b.WriteString("\n")
}
