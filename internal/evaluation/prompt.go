package evaluation

import (
	"fmt"
	"strings"

	"github.com/jonathan/persona-evaluator/internal/prompts"
	"github.com/jonathan/persona-evaluator/internal/types"
)

// BuildPrompt composes the persona-specific evaluation prompt from candidate
// data, the job posting, and the classifier's domain context snippet.
func BuildPrompt(req *types.EvaluationRequest) string {
	p := req.Persona

	lineTemplate := prompts.MustGet("evaluation.json", "criteria-line")
	var criteriaLines []string
	for _, c := range p.Criteria {
		desc := c.Description
		if desc == "" {
			desc = "No description provided"
		}
		criteriaLines = append(criteriaLines, prompts.Format(lineTemplate, map[string]string{
			"Name":        c.Name,
			"Description": desc,
		}))
	}

	domainContext := ""
	if req.DomainContext != "" {
		domainContext = "## Domain Context\n" + req.DomainContext + "\n\n"
	}

	template := prompts.MustGet("evaluation.json", "persona-evaluation")
	return prompts.Format(template, map[string]string{
		"PersonaName":      p.DisplayName,
		"PersonaFragment":  p.PromptFragment,
		"JobPosting":       req.JobPosting,
		"CandidateProfile": req.CandidateProfile,
		"DomainContext":    domainContext,
		"CriteriaList":     strings.Join(criteriaLines, "\n"),
		"ResponseShape":    responseShape(p),
	})
}

// responseShape renders a literal example of the expected payload so the
// model sees the exact criterion names it must return.
func responseShape(p *types.Persona) string {
	var sb strings.Builder
	sb.WriteString("{\n  \"criterion_scores\": [\n")
	for i, c := range p.Criteria {
		sb.WriteString(fmt.Sprintf("    {\"name\": %q, \"score\": <1-10>, \"reasoning\": \"...\"}", c.Name))
		if i < len(p.Criteria)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ],\n  \"overall_average\": <number>,\n  \"recommendation\": \"...\"\n}")
	return sb.String()
}
