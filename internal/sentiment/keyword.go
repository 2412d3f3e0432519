package sentiment

import (
	"context"
	"regexp"
	"strings"

	"optionscout/internal/models"
)

// Keyword lists for rule-based headline classification. Matching is
// presence-based: each keyword found as a substring counts once,
// however many times it appears.
var bullishKeywords = []string{
	"surge", "jump", "rise", "gain", "up", "higher", "boost", "growth",
	"profit", "positive", "strong", "beat", "exceed", "upgrade", "buy",
	"bullish", "record", "partnership", "launch", "expansion",
	"innovation", "contract", "win", "success",
}

var bearishKeywords = []string{
	"fall", "drop", "decline", "down", "lower", "loss", "weak", "miss",
	"below", "downgrade", "sell", "bearish", "cut", "reduce", "risk",
	"concern", "debt", "investigation", "lawsuit", "penalty", "fine",
	"delay", "recall", "dispute",
}

// Headline patterns mapped to the impact factor they indicate.
var impactPatterns = []struct {
	re     *regexp.Regexp
	factor string
}{
	{regexp.MustCompile(`quarter|q[1-4]|results|earnings`), "Earnings/Results"},
	{regexp.MustCompile(`dividend|bonus|split`), "Corporate Action"},
	{regexp.MustCompile(`contract|deal|order|agreement`), "Business Development"},
	{regexp.MustCompile(`ceo|director|board|management`), "Management Changes"},
	{regexp.MustCompile(`stake|acquire|merge|buy`), "M&A Activity"},
}

// classification thresholds on the normalized score
const (
	bullishThreshold = 0.3
	bearishThreshold = -0.3
)

// KeywordClassifier scores headlines by keyword counts. It is the
// always-available fallback behind the LLM classifier and needs no
// external calls.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify scores one headline. The score is (bullish-bearish)/(total)
// over matched keywords, zero when nothing matches.
func (c *KeywordClassifier) Classify(_ context.Context, title string) (models.Sentiment, float64, []string) {
	text := strings.ToLower(title)

	var bullish, bearish int
	for _, kw := range bullishKeywords {
		if strings.Contains(text, kw) {
			bullish++
		}
	}
	for _, kw := range bearishKeywords {
		if strings.Contains(text, kw) {
			bearish++
		}
	}

	var score float64
	if total := bullish + bearish; total > 0 {
		score = float64(bullish-bearish) / float64(total)
	}

	sentiment := models.SentimentNeutral
	switch {
	case score > bullishThreshold:
		sentiment = models.SentimentBullish
	case score < bearishThreshold:
		sentiment = models.SentimentBearish
	}

	return sentiment, score, impactFactors(text)
}

func impactFactors(text string) []string {
	var factors []string
	for _, p := range impactPatterns {
		if p.re.MatchString(text) {
			factors = append(factors, p.factor)
		}
	}
	return factors
}
