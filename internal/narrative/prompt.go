package narrative

import (
	"fmt"
	"math"
	"strings"

	"memescore/internal/model"
)

// BuildPrompt renders the analysis request sent to the text generator.
// Scores use two decimals, counters are truncated to integers and the tip
// amount keeps four decimals.
func BuildPrompt(tpl Templates, b model.ScoreBreakdown, in model.EngagementInput, botScore float64) string {
	lines := make([]string, 0, 20)
	lines = append(lines, tpl.Intro)

	scores := [5]float64{b.MemeScore, b.EngagementScore, b.ViewScore, b.FollowScore, b.TipScore}
	for i, f := range tpl.ScoreLines {
		lines = append(lines, fmt.Sprintf(f, scores[i]))
	}

	lines = append(lines, tpl.CounterHead)
	counters := [7]float64{in.Likes, in.Comments, in.Reposts, in.Quotes, in.Views, in.Followers, in.TipCount}
	for i, f := range tpl.CounterLines {
		lines = append(lines, fmt.Sprintf(f, math.Trunc(counters[i])))
	}
	lines = append(lines, fmt.Sprintf(tpl.TipAmountLine, in.TipAmount))

	if botScore >= BotWarningThreshold {
		lines = append(lines, fmt.Sprintf(tpl.BotWarning, botScore))
	}

	lines = append(lines, tpl.Instructions)
	return strings.Join(lines, "\n")
}
