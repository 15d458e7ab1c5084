package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExamples_Currency(t *testing.T) {
	examples := ExtractExamples("Led a migration saving $2.5M annually. Nothing else notable here.")
	assert.Equal(t, []string{"Led a migration saving $2.5M annually."}, examples)
}

func TestExtractExamples_Percentage(t *testing.T) {
	examples := ExtractExamples("Improved latency by 35% across services.")
	assert.Len(t, examples, 1)
}

func TestExtractExamples_LargeQuantity(t *testing.T) {
	assert.Len(t, ExtractExamples("Scaled the platform to 1,200,000 daily users."), 1)
	assert.Len(t, ExtractExamples("Handled 50000 requests per second."), 1)
	assert.Len(t, ExtractExamples("Supported 200+ internal teams."), 1)
}

func TestExtractExamples_KnownOrganization(t *testing.T) {
	examples := ExtractExamples("Previously shipped infrastructure at Google.")
	assert.Len(t, examples, 1)
}

func TestExtractExamples_NoConcreteContent(t *testing.T) {
	examples := ExtractExamples("The candidate seems capable and writes well.")
	assert.Empty(t, examples)
}

func TestExtractExamples_PerBlockCap(t *testing.T) {
	reasoning := "Saved $1M. Cut costs 20%. Served 10,000 users. Raised $5M. Shipped to 90% of fleet."
	examples := ExtractExamples(reasoning)
	assert.Len(t, examples, maxExamplesPerBlock)
}

func TestCapExamples_DeduplicatesAndCaps(t *testing.T) {
	input := []string{
		"Saved $1M.",
		"saved $1m.", // case-insensitive duplicate
		"Cut costs 20%.",
		"Served 10,000 users.",
		"Raised $5M.",
		"Shipped to 90% of fleet.",
		"Scaled to 2,000 nodes.",
	}

	capped := CapExamples(input)
	assert.Len(t, capped, maxExamplesPerReport)
	assert.Equal(t, "Saved $1M.", capped[0])
	assert.NotContains(t, capped, "saved $1m.")
}

func TestCapExamples_Empty(t *testing.T) {
	assert.Empty(t, CapExamples(nil))
}
