package summarize

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

const (
	DefaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second

	systemPrompt = "You rewrite tabletop spell descriptions for playing cards. " +
		"Keep every game mechanic, drop flavor first, and never add rules."
)

// OpenAIConfig contains configuration for the OpenAI summarizer
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAISummarizer implements Summarizer with a chat completion
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer. An empty API key is UNAUTHENTICATED.
func NewOpenAISummarizer(cfg *OpenAIConfig) (*OpenAISummarizer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.Unauthenticated("summarizer API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cmp.Or(cfg.Timeout, defaultTimeout)),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAISummarizer{
		client: &client,
		model:  cmp.Or(cfg.Model, DefaultModel),
	}, nil
}

// Summarize asks the model for a summary within maxLength characters
func (o *OpenAISummarizer) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	user := fmt.Sprintf("Summarize in at most %d characters:\n\n%s", maxLength, text)

	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Role: "system",
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: param.Opt[string]{Value: systemPrompt},
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Role: "user",
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: param.Opt[string]{Value: user},
					},
				},
			},
		},
		Temperature: openai.Float(0.3),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "summary request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.Unavailable("no choices returned")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.Unavailable("empty completion content")
	}
	return content, nil
}
