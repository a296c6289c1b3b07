package model

// Bot heuristic thresholds.
const (
	minFollowersForBotCheck = 10

	highEngagementRate      = 0.5
	highFollowerEngagement  = 5
	likesOnlyRatio          = 0.9
	likesOnlyCommentsRatio  = 0.05
	lowViewsEngagementRatio = 0.8

	maxBotScore = 100.0
)

// Rule names reported by BotSignals.
const (
	RuleHighEngagementRate     = "high_engagement_rate"
	RuleHighFollowerEngagement = "high_follower_engagement"
	RuleLikesWithoutComments   = "likes_without_comments"
	RuleLowViews               = "low_views"
)

// BotSignals explains a bot score: the ratios it was computed from and the
// rules that added points. Skipped is set when there was too little signal
// to compute ratios at all.
type BotSignals struct {
	Skipped            string
	EngagementRate     float64
	FollowerEngagement float64
	LikesRatio         float64
	CommentsRatio      float64
	Fired              []string
	Score              float64
}

// ComputeBotScore returns a bot-suspicion score in [0,100]. Higher is more suspicious.
func ComputeBotScore(in EngagementInput) float64 {
	return EvaluateBot(in).Score
}

// EvaluateBot runs the bot heuristic and reports how it got there.
// Tip counters are not used.
func EvaluateBot(in EngagementInput) BotSignals {
	var s BotSignals
	if in.Followers < minFollowersForBotCheck {
		s.Skipped = "too_few_followers"
		return s
	}
	total := in.TotalEngagement()
	if total == 0 || in.Views == 0 {
		s.Skipped = "no_engagement_or_views"
		return s
	}

	s.EngagementRate = total / in.Views
	s.FollowerEngagement = total / in.Followers
	s.LikesRatio = in.Likes / total
	s.CommentsRatio = in.Comments / total

	score := 0.0
	if s.EngagementRate > highEngagementRate {
		score += 30
		s.Fired = append(s.Fired, RuleHighEngagementRate)
	}
	if s.FollowerEngagement > highFollowerEngagement {
		score += 25
		s.Fired = append(s.Fired, RuleHighFollowerEngagement)
	}
	if s.LikesRatio > likesOnlyRatio && s.CommentsRatio < likesOnlyCommentsRatio {
		score += 20
		s.Fired = append(s.Fired, RuleLikesWithoutComments)
	}
	// Same ratio as the first rule at a stricter threshold; both apply.
	if in.Views > 0 && total/in.Views > lowViewsEngagementRatio {
		score += 25
		s.Fired = append(s.Fired, RuleLowViews)
	}

	if score > maxBotScore {
		score = maxBotScore
	}
	s.Score = score
	return s
}
