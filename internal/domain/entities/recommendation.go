package entities

// Recommendation is the three-level outcome of a check. It only ever escalates.
type Recommendation int

const (
	// RecommendationNone means nothing relevant changed upstream.
	RecommendationNone Recommendation = iota
	// RecommendationReview means build inputs changed and the diffs need a human look.
	RecommendationReview
	// RecommendationRebuild means values consumed by the build scripts changed.
	RecommendationRebuild
)

// Escalate returns the higher of the two recommendations.
func (r Recommendation) Escalate(other Recommendation) Recommendation {
	if other > r {
		return other
	}
	return r
}

func (r Recommendation) String() string {
	switch r {
	case RecommendationNone:
		return "none"
	case RecommendationReview:
		return "review"
	case RecommendationRebuild:
		return "rebuild"
	default:
		return "unknown"
	}
}
