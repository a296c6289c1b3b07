package narrative

import (
	"fmt"
	"sort"
	"strings"
)

// Templates holds every piece of fixed text the composer emits for one locale.
// Line formats take float64 arguments.
type Templates struct {
	Locale       string
	SystemPrompt string

	Intro       string
	ScoreLines  [5]string // meme, engagement, views, followers, tip
	CounterHead string
	// likes, comments, reposts, quotes, views, followers, tip count
	CounterLines  [7]string
	TipAmountLine string
	BotWarning    string
	Instructions  string

	HeaderGlyph       string
	Header            string
	Disclaimer        string
	DisclaimerMarkers [2]string
	Fallback          string
	ErrorFallback     string
}

// BotWarningThreshold is the bot score from which the prompt carries a warning line.
const BotWarningThreshold = 50.0

// Korean is the default locale used by the MemeX dashboard.
var Korean = Templates{
	Locale:       "ko",
	SystemPrompt: "당신은 소셜 미디어 분석 전문가입니다.",

	Intro: "당신은 MemeX 플랫폼의 크리에이터 활동 분석 전문가입니다.\n" +
		"아래는 최근 7일간의 활동 데이터입니다:\n",
	ScoreLines: [5]string{
		"- 최종 MemeScore: %.2f",
		"- 반응 점수 (Engagement): %.2f",
		"- 조회 점수 (Views): %.2f",
		"- 팔로워 점수: %.2f",
		"- Tip 점수: %.2f\n",
	},
	CounterHead: "세부 활동 지표:",
	CounterLines: [7]string{
		"- 좋아요: %.0f개",
		"- 댓글: %.0f개",
		"- 리포스트: %.0f개",
		"- 인용: %.0f개",
		"- 조회수: %.0f회",
		"- 팔로워: %.0f명",
		"- Tip 횟수: %.0f회",
	},
	TipAmountLine: "- Tip 총액: %.4f ETH\n",
	BotWarning:    "⚠️ 봇 의심 점수: %.1f/100 (비정상 활동 패턴 감지)",
	Instructions: "\n다음 형식으로 5-7개의 bullet point로 분석을 작성해주세요:\n" +
		"1. 전체적인 활동 수준과 MemeScore 평가\n" +
		"2. 가장 강한 지표와 약한 지표 분석\n" +
		"3. 개선을 위한 구체적인 조언\n" +
		"4. (봇 점수가 높으면) 활동 패턴의 이상 징후 언급\n" +
		"\n각 bullet은 '▪' 기호로 시작하고, 간결하고 실용적인 조언을 제공하세요.",

	HeaderGlyph:       "🤖",
	Header:            "🤖 AI 활동 요약 (7일)\n\n",
	Disclaimer:        "\n\n※ 데모 목적으로만 사용하세요. 투자 조언이 아닙니다.",
	DisclaimerMarkers: [2]string{"데모 목적", "투자 조언"},
	Fallback: "🤖 AI 활동 요약 (7일)\n" +
		"\n" +
		"▪ 현재 활동 수준은 보통이며, 꾸준한 콘텐츠 생산이 필요합니다.\n" +
		"▪ 조회수 대비 참여율을 높이기 위해 더 흥미로운 콘텐츠를 제작해보세요.\n" +
		"▪ 댓글과 인용을 유도하는 질문형 포스트가 효과적입니다.\n" +
		"▪ Tip을 받기 위해서는 팔로워와의 적극적인 소통이 중요합니다.\n" +
		"▪ 지속적인 활동으로 팔로워 기반을 확장하는 것을 추천합니다.\n" +
		"\n" +
		"※ 데모 목적으로만 사용하세요. 투자 조언이 아닙니다.",
	ErrorFallback: "🤖 AI 활동 요약 (7일)\n" +
		"\n" +
		"▪ AI 분석 중 일시적인 오류가 발생했습니다.\n" +
		"▪ 기본 지표를 기반으로 활동을 계속 이어가세요.\n" +
		"\n" +
		"※ 데모 목적으로만 사용하세요. 투자 조언이 아닙니다.",
}

var English = Templates{
	Locale:       "en",
	SystemPrompt: "You are a social media analytics expert.",

	Intro: "You are an expert analyst of creator activity on the MemeX platform.\n" +
		"Below is the activity data for the last 7 days:\n",
	ScoreLines: [5]string{
		"- Final MemeScore: %.2f",
		"- Engagement score: %.2f",
		"- View score: %.2f",
		"- Follower score: %.2f",
		"- Tip score: %.2f\n",
	},
	CounterHead: "Activity details:",
	CounterLines: [7]string{
		"- Likes: %.0f",
		"- Comments: %.0f",
		"- Reposts: %.0f",
		"- Quotes: %.0f",
		"- Views: %.0f",
		"- Followers: %.0f",
		"- Tips received: %.0f",
	},
	TipAmountLine: "- Tip total: %.4f ETH\n",
	BotWarning:    "⚠️ Bot suspicion score: %.1f/100 (abnormal activity pattern detected)",
	Instructions: "\nWrite the analysis as 5-7 bullet points covering:\n" +
		"1. Overall activity level and a MemeScore assessment\n" +
		"2. The strongest and weakest metrics\n" +
		"3. Concrete advice for improvement\n" +
		"4. (If the bot score is high) signs of an abnormal activity pattern\n" +
		"\nStart every bullet with the '▪' symbol and keep the advice short and practical.",

	HeaderGlyph:       "🤖",
	Header:            "🤖 AI Activity Summary (7 days)\n\n",
	Disclaimer:        "\n\n※ For demo purposes only. Not investment advice.",
	DisclaimerMarkers: [2]string{"demo purposes", "investment advice"},
	Fallback: "🤖 AI Activity Summary (7 days)\n" +
		"\n" +
		"▪ Your activity level is average; steady posting will help.\n" +
		"▪ Make more engaging content to lift engagement relative to views.\n" +
		"▪ Question-style posts work well for drawing comments and quotes.\n" +
		"▪ Talking with your followers is what earns tips.\n" +
		"▪ Keep posting consistently to grow your follower base.\n" +
		"\n" +
		"※ For demo purposes only. Not investment advice.",
	ErrorFallback: "🤖 AI Activity Summary (7 days)\n" +
		"\n" +
		"▪ A temporary error occurred during AI analysis.\n" +
		"▪ Keep building on your baseline metrics.\n" +
		"\n" +
		"※ For demo purposes only. Not investment advice.",
}

var locales = map[string]Templates{
	Korean.Locale:  Korean,
	English.Locale: English,
}

// ForLocale returns the templates for a locale code.
func ForLocale(locale string) (Templates, error) {
	tpl, ok := locales[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return Templates{}, fmt.Errorf("unknown narrative locale %q (supported: %s)", locale, strings.Join(Locales(), ", "))
	}
	return tpl, nil
}

// Locales lists the supported locale codes.
func Locales() []string {
	out := make([]string, 0, len(locales))
	for k := range locales {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
