package sentiment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"optionscout/internal/models"
)

const classifySystemPrompt = `You are a sentiment analyst for Indian stock market news headlines.
Classify the headline's likely impact on the stock price.
Your response must be in the following exact format:
SENTIMENT: Bullish|Bearish|Neutral
SCORE: <number between -1.0 and 1.0>`

const llmTimeout = 10 * time.Second

// LLMClassifier classifies headlines with a chat model and degrades to
// keyword classification whenever the model call fails or returns an
// unparseable response. Impact factors always come from the keyword
// patterns so they stay deterministic.
type LLMClassifier struct {
	client   *openai.Client
	model    string
	fallback *KeywordClassifier
	logger   zerolog.Logger
}

func NewLLMClassifier(apiKey, model string, logger zerolog.Logger) *LLMClassifier {
	return &LLMClassifier{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: NewKeywordClassifier(),
		logger:   logger,
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, title string) (models.Sentiment, float64, []string) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: title},
		},
		Temperature: 0,
		MaxTokens:   50,
	})
	if err != nil || len(resp.Choices) == 0 {
		c.logger.Debug().Err(err).Msg("llm classification failed, using keyword fallback")
		return c.fallback.Classify(ctx, title)
	}

	sentiment, score, ok := parseClassification(resp.Choices[0].Message.Content)
	if !ok {
		c.logger.Debug().Str("response", resp.Choices[0].Message.Content).
			Msg("unparseable llm classification, using keyword fallback")
		return c.fallback.Classify(ctx, title)
	}

	return sentiment, score, impactFactors(strings.ToLower(title))
}

// parseClassification reads the SENTIMENT/SCORE response format.
func parseClassification(response string) (models.Sentiment, float64, bool) {
	var (
		sentiment models.Sentiment
		score     float64
		haveSent  bool
		haveScore bool
	)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SENTIMENT:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "SENTIMENT:"))
			switch models.Sentiment(value) {
			case models.SentimentBullish, models.SentimentBearish, models.SentimentNeutral:
				sentiment = models.Sentiment(value)
				haveSent = true
			}
		case strings.HasPrefix(line, "SCORE:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "SCORE:"))
			if parsed, err := parseScore(value); err == nil {
				score = parsed
				haveScore = true
			}
		}
	}
	if !haveSent || !haveScore {
		return models.SentimentNeutral, 0, false
	}
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return sentiment, score, true
}

func parseScore(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
}
