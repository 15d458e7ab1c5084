package scoring

// Tier is one assessment band on the composite score.
type Tier struct {
	Name           string
	Threshold      float64
	Recommendation string
}

// tiers are fixed thresholds on the composite score, highest first. A
// composite lands in the first tier whose threshold it meets.
var tiers = []Tier{
	{Name: "Exceptional", Threshold: 8.5, Recommendation: "Exceptional candidate. Fast-track to interview."},
	{Name: "Viable", Threshold: 8.0, Recommendation: "Viable candidate. Proceed to interview."},
	{Name: "Below-Viable", Threshold: 7.0, Recommendation: "Below the viability bar. Proceed only with additional screening."},
	{Name: "Weak", Threshold: 5.0, Recommendation: "Weak match for this role. Deprioritize."},
}

// poorTier catches everything below the lowest threshold.
var poorTier = Tier{Name: "Poor", Threshold: 0, Recommendation: "Poor match. Do not proceed."}

// TierFor maps a composite score to its assessment tier.
func TierFor(composite float64) Tier {
	for _, t := range tiers {
		if composite >= t.Threshold {
			return t
		}
	}
	return poorTier
}
