// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/persona-evaluator/internal/classify"
	"github.com/jonathan/persona-evaluator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywordAssignments outputs how priority keywords were routed to
// persona domains.
func (p *Printer) PrintKeywordAssignments(assignments []classify.Assignment) {
	if len(assignments) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Routed %d keywords:\n\n", len(assignments)))

	count := min(len(assignments), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := assignments[i]
		keyword := a.Keyword.Keyword
		if len(keyword) > 30 {
			keyword = keyword[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s → %s (%.2f)\n", keyword, a.PersonaKey, a.Similarity))
	}

	if len(assignments) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more keywords", len(assignments)-maxItemsToShow))
	}

	p.printBox("KEYWORD ROUTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutcomes outputs the per-persona result of an evaluation run.
func (p *Printer) PrintOutcomes(outcomes []types.EvaluationOutcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	for i := range outcomes {
		o := &outcomes[i]
		if o.Succeeded() {
			sb.WriteString(fmt.Sprintf("✓ %s (%d criteria)\n", o.PersonaKey, len(o.Evaluation.CriterionScores)))
			continue
		}
		detail := o.Err.Detail
		if len(detail) > 35 {
			detail = detail[:32] + "..."
		}
		sb.WriteString(fmt.Sprintf("✗ %s: %s\n", o.PersonaKey, o.Err.Kind))
		if detail != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", detail))
		}
	}

	p.printBox("PERSONA OUTCOMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComposite outputs the aggregated score, tier and consensus summary.
func (p *Printer) PrintComposite(composite *types.CompositeResult) {
	if composite == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:      %.2f / 10\n", composite.WeightedScore))
	sb.WriteString(fmt.Sprintf("Tier:       %s\n", composite.AssessmentTier))
	sb.WriteString(fmt.Sprintf("Consensus:  %s (spread %.2f)\n", composite.ConsensusLevel, composite.VarianceAcrossPersonas))
	sb.WriteString(fmt.Sprintf("Strongest:  %s\n", composite.StrongestPersona))
	sb.WriteString(fmt.Sprintf("Weakest:    %s", composite.WeakestPersona))

	if len(composite.MissingPersonas) > 0 {
		sb.WriteString("\n\nExcluded:\n")
		for _, m := range composite.MissingPersonas {
			sb.WriteString(fmt.Sprintf("  ⚠ %s (%s)\n", m.PersonaKey, m.Reason))
		}
	}

	p.printBox("COMPOSITE RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs a condensed view of extracted strengths and concerns.
func (p *Printer) PrintInsights(insights *types.QualitativeInsights) {
	if insights == nil || (len(insights.Strengths) == 0 && len(insights.Concerns) == 0) {
		return
	}

	var sb strings.Builder

	if len(insights.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		count := min(len(insights.Strengths), 3)
		for i := 0; i < count; i++ {
			s := insights.Strengths[i]
			text := s.Insight
			if len(text) > 45 {
				text = text[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", s.Theme, text))
		}
		if len(insights.Strengths) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(insights.Strengths)-3))
		}
		sb.WriteString("\n")
	}

	if len(insights.Concerns) > 0 {
		sb.WriteString("Concerns:\n")
		count := min(len(insights.Concerns), 3)
		for i := 0; i < count; i++ {
			c := insights.Concerns[i]
			text := c.Insight
			if len(text) > 45 {
				text = text[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ [%s] %s\n", c.Theme, text))
		}
		if len(insights.Concerns) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(insights.Concerns)-3))
		}
	}

	p.printBox("QUALITATIVE INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}
