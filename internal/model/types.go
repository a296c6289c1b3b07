package model

// EngagementInput holds the raw counters for one creator window.
// All values are non-negative and finite; callers validate before scoring.
type EngagementInput struct {
	Likes     float64
	Comments  float64
	Reposts   float64
	Quotes    float64
	Views     float64
	Followers float64
	TipCount  float64
	TipAmount float64 // ETH
}

// TotalEngagement is likes + comments + reposts + quotes.
func (in EngagementInput) TotalEngagement() float64 {
	return in.Likes + in.Comments + in.Reposts + in.Quotes
}

// ScoreBreakdown is the MemeScore and its four parts.
// Scores are rounded to one decimal; TotalEngagement is the raw sum.
type ScoreBreakdown struct {
	EngagementScore float64
	ViewScore       float64
	FollowScore     float64
	TipScore        float64
	MemeScore       float64
	TotalEngagement float64
}

// Categories renames the sub-scores to the names callers display.
type Categories struct {
	EngagementQuality  float64 `json:"engagement_quality"`
	ViralityPotential  float64 `json:"virality_potential"`
	CommunityStrength  float64 `json:"community_strength"`
	MonetizationHealth float64 `json:"monetization_health"`
}

// Categories maps engagement, view, follow and tip scores onto their display names.
func (b ScoreBreakdown) Categories() Categories {
	return Categories{
		EngagementQuality:  b.EngagementScore,
		ViralityPotential:  b.ViewScore,
		CommunityStrength:  b.FollowScore,
		MonetizationHealth: b.TipScore,
	}
}
