package model

import (
	"math"
	"strconv"
)

// Sub-score weights of MemeScore v2.
const (
	engagementWeight = 10
	viewWeight       = 5
	followWeight     = 8
	tipCountWeight   = 3
	tipAmountWeight  = 2
)

// ComputeBreakdown calculates the MemeScore v2 breakdown.
// The total is summed from the unrounded parts, so it can differ from the
// sum of the rounded parts by a few tenths.
func ComputeBreakdown(in EngagementInput) ScoreBreakdown {
	total := in.TotalEngagement()

	engagement := logScore(total) * engagementWeight
	view := logScore(in.Views) * viewWeight
	follow := logScore(in.Followers) * followWeight
	tip := logScore(in.TipCount)*tipCountWeight + logScore(in.TipAmount)*tipAmountWeight
	meme := engagement + view + follow + tip

	return ScoreBreakdown{
		EngagementScore: Round1(engagement),
		ViewScore:       Round1(view),
		FollowScore:     Round1(follow),
		TipScore:        Round1(tip),
		MemeScore:       Round1(meme),
		TotalEngagement: total,
	}
}

func logScore(v float64) float64 {
	return math.Log10(1 + v)
}

// Round1 rounds to one decimal place, half to even on the exact binary value.
// 0.25 is exactly representable and becomes 0.2; 0.35 is stored slightly
// below .35 and becomes 0.3.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
