package domain

// SearchPatternResult names a recommended search pattern with the rationale
// for choosing it.
type SearchPatternResult struct {
	Pattern   string
	Rationale string
}

// RecommendSearchPattern classifies elapsed time and drift distance into a
// named search pattern. The rules form an ordered decision list; the first
// match wins. Thresholds are fixed for compatibility with existing SAR
// planning expectations.
func RecommendSearchPattern(hours, driftKm float64, object ObjectType) SearchPatternResult {
	switch {
	case hours < 1 && driftKm < 2:
		return SearchPatternResult{
			Pattern:   "Sector Search",
			Rationale: "Use when position is recent and precise.",
		}
	case hours < 3 && driftKm < 8:
		return SearchPatternResult{
			Pattern:   "Expanding Square",
			Rationale: "Covers moderate uncertainty zones.",
		}
	case object.WearsLifeJacket() && hours < 24:
		return SearchPatternResult{
			Pattern:   "Parallel Track",
			Rationale: "Person with life jacket - expanded search area.",
		}
	default:
		return SearchPatternResult{
			Pattern:   "Parallel Sweep",
			Rationale: "Large area coverage for extended time/distance.",
		}
	}
}
