package insights

import "strings"

// Coarse themes criterion names collapse into for cross-persona comparison.
const (
	ThemeTechnical     = "Technical"
	ThemeLeadership    = "Leadership"
	ThemeCommunication = "Communication"
	ThemeExecution     = "Execution"
	ThemeDomain        = "Domain"
	ThemeCareer        = "Career"
	ThemeGeneral       = "General"
)

// themeMarkers maps criterion-name fragments to themes. First match wins,
// in this order.
var themeMarkers = []struct {
	theme   string
	markers []string
}{
	{ThemeTechnical, []string{"technical", "code", "system", "architecture", "engineering", "problem_solving"}},
	{ThemeLeadership, []string{"leadership", "management", "mentor", "team", "ownership"}},
	{ThemeCommunication, []string{"communication", "collaboration", "culture", "interpersonal"}},
	{ThemeExecution, []string{"delivery", "execution", "track_record", "impact", "results"}},
	{ThemeDomain, []string{"domain", "industry", "business", "customer", "market"}},
	{ThemeCareer, []string{"career", "growth", "trajectory", "progression", "adaptability", "role_alignment"}},
}

// ThemeFor maps a criterion name to its coarse theme.
func ThemeFor(criterionName string) string {
	name := strings.ToLower(criterionName)
	for _, tm := range themeMarkers {
		for _, marker := range tm.markers {
			if strings.Contains(name, marker) {
				return tm.theme
			}
		}
	}
	return ThemeGeneral
}
