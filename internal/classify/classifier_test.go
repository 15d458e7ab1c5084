package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/persona-evaluator/internal/personas"
)

func TestSimilarity_ExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("distributed systems", "distributed systems"))
}

func TestSimilarity_SubstringContainment(t *testing.T) {
	// "kubernetes" contains "kube" in neither direction here, but
	// "golang" contains "go" so the single-token pair matches.
	assert.Equal(t, 1.0, Similarity("golang", "go"))

	// One of two words matches, normalized by the longer phrase.
	assert.InDelta(t, 0.5, Similarity("systems", "distributed systems"), 0.001)
}

func TestSimilarity_NoOverlap(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("painting", "databases"))
	assert.Equal(t, 0.0, Similarity("", "databases"))
}

func TestAssignKeywords_RoutesToBestDomain(t *testing.T) {
	reg := testRegistry(t)

	assignments := AssignKeywords([]RankedKeyword{
		{Keyword: "kubernetes", Score: 0.9},
		{Keyword: "mentoring engineers", Score: 0.7},
		{Keyword: "underwater basket weaving", Score: 0.5},
	}, reg)

	require.Len(t, assignments, 2)
	assert.Equal(t, "tech", assignments[0].PersonaKey)
	assert.Equal(t, "kubernetes", assignments[0].Keyword.Keyword)
	assert.Equal(t, "manager", assignments[1].PersonaKey)
}

func TestAssignKeywords_AtMostOneDomain(t *testing.T) {
	reg := testRegistry(t)

	// "engineering" is a reference keyword in both domains; the keyword must
	// land exactly once.
	assignments := AssignKeywords([]RankedKeyword{{Keyword: "engineering", Score: 1.0}}, reg)
	require.Len(t, assignments, 1)
}

func TestAssignKeywords_TieGoesToFirstDeclared(t *testing.T) {
	reg := testRegistry(t)

	// Identical similarity against both domains: first-declared persona wins.
	assignments := AssignKeywords([]RankedKeyword{{Keyword: "engineering", Score: 1.0}}, reg)
	require.Len(t, assignments, 1)
	assert.Equal(t, "tech", assignments[0].PersonaKey)
}

func TestAssignKeywords_BelowThresholdDropped(t *testing.T) {
	reg := testRegistry(t)

	assignments := AssignKeywords([]RankedKeyword{{Keyword: "competitive chess", Score: 0.8}}, reg)
	assert.Empty(t, assignments)
}

func TestBuildDomainContexts(t *testing.T) {
	contexts := BuildDomainContexts([]Assignment{
		{PersonaKey: "tech", Keyword: RankedKeyword{Keyword: "kubernetes", Score: 0.9}, Similarity: 1.0},
		{PersonaKey: "tech", Keyword: RankedKeyword{Keyword: "go", Score: 0.8}, Similarity: 1.0},
		{PersonaKey: "manager", Keyword: RankedKeyword{Keyword: "mentoring", Score: 0.7}, Similarity: 1.0},
	})

	require.Len(t, contexts, 2)
	assert.Contains(t, contexts["tech"], "kubernetes (priority 0.90)")
	assert.Contains(t, contexts["tech"], "go (priority 0.80)")
	assert.Contains(t, contexts["manager"], "mentoring (priority 0.70)")
}

func TestBuildDomainContexts_Empty(t *testing.T) {
	assert.Empty(t, BuildDomainContexts(nil))
}

// testRegistry builds a two-persona registry with overlapping domain keywords.
func testRegistry(t *testing.T) *personas.Registry {
	t.Helper()

	dir := t.TempDir()
	content := `[
		{"key": "tech", "display_name": "Tech", "weight": 0.6,
		 "criteria": [{"name": "technical_depth"}],
		 "domain_keywords": ["kubernetes", "go", "software engineering"]},
		{"key": "manager", "display_name": "Manager", "weight": 0.4,
		 "criteria": [{"name": "team_leadership"}],
		 "domain_keywords": ["mentoring", "engineering management"]}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "personas.json"), []byte(content), 0o644))

	reg, err := personas.LoadDir(dir)
	require.NoError(t, err)
	return reg
}
