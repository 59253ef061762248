package imagegen

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	internalerrors "github.com/KirkDiggler/deck-forge/internal/errors"
)

const (
	DefaultModel   = "dall-e-3"
	DefaultTimeout = 60 * time.Second

	// MetaStatus and MetaBody are the error meta keys for service failures
	MetaStatus = "status"
	MetaBody   = "body"
)

// OpenAIConfig contains configuration for the OpenAI image generator
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Validate checks the config and fills defaults
func (c *OpenAIConfig) Validate() error {
	if c == nil {
		return internalerrors.InvalidArgument("config is required")
	}
	if c.APIKey == "" {
		return internalerrors.Unauthenticated("image generation API key is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// OpenAIGenerator implements Generator using OpenAI's images endpoint
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator. Each request is bounded by the
// configured timeout and is not retried.
func NewOpenAIGenerator(cfg *OpenAIConfig) (*OpenAIGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIGenerator{
		client: &client,
		model:  cfg.Model,
	}, nil
}

// Generate requests images for one prompt
func (g *OpenAIGenerator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil || input.Prompt == "" {
		return nil, internalerrors.InvalidArgument("prompt is required")
	}

	params := openai.ImageGenerateParams{
		Prompt: input.Prompt,
		Model:  openai.ImageModel(g.model),
	}
	if input.N > 0 {
		params.N = openai.Int(int64(input.N))
	}
	if input.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(input.Size)
	}

	resp, err := g.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, serviceError(err)
	}

	out := &GenerateOutput{Images: make([]Image, 0, len(resp.Data))}
	for _, img := range resp.Data {
		out.Images = append(out.Images, Image{URL: img.URL, B64JSON: img.B64JSON})
	}
	if len(out.Images) == 0 {
		return nil, internalerrors.Unavailable("image service returned no images")
	}

	return out, nil
}

func serviceError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		body := apiErr.RawJSON()
		if body == "" {
			body = apiErr.Error()
		}
		return internalerrors.WrapWithCode(err, internalerrors.CodeUnavailable, "image generation failed").
			WithMeta(MetaStatus, apiErr.StatusCode).
			WithMeta(MetaBody, body)
	}

	return internalerrors.WrapWithCode(err, internalerrors.CodeUnavailable, "image generation request failed").
		WithMeta(MetaStatus, 0).
		WithMeta(MetaBody, err.Error())
}
