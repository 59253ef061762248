// Package art generates versioned card artwork and keeps each card's art
// history in the deck file.
package art

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/clients/imagegen"
	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/pkg/atomicfile"
	"github.com/KirkDiggler/deck-forge/internal/pkg/clock"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
	"github.com/KirkDiggler/deck-forge/internal/services/prompt"
)

const diagnosticTimeFormat = "20060102T150405"

var sizePattern = regexp.MustCompile(`^\d+x\d+$`)

// CredentialFunc returns the image service credential at call time
type CredentialFunc func() (string, bool)

// GeneratorFactory builds an image generator for a credential
type GeneratorFactory func(apiKey string) (imagegen.Generator, error)

// Service defines the interface for deck art operations
type Service interface {
	// Generate creates missing art for each card and records the version
	// on every card. Cards are processed one at a time; a failing card is
	// reported in the output and does not stop the run.
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// Normalize rewrites backslashes in art paths to forward slashes
	Normalize(ctx context.Context, input *NormalizeInput) (*NormalizeOutput, error)
}

// Config holds the dependencies for the art orchestrator
type Config struct {
	DeckRepo    deckfile.Repository
	Credentials CredentialFunc
	Generators  GeneratorFactory
	Downloader  imagegen.Downloader
	Clock       clock.Clock
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DeckRepo == nil {
		vb.RequiredField("DeckRepo")
	}
	if c.Credentials == nil {
		vb.RequiredField("Credentials")
	}
	if c.Generators == nil {
		vb.RequiredField("Generators")
	}
	if c.Downloader == nil {
		vb.RequiredField("Downloader")
	}

	return vb.Build()
}

type orchestrator struct {
	deckRepo    deckfile.Repository
	credentials CredentialFunc
	generators  GeneratorFactory
	downloader  imagegen.Downloader
	clock       clock.Clock
	logger      *slog.Logger
}

// NewOrchestrator creates a new art orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		deckRepo:    cfg.DeckRepo,
		credentials: cfg.Credentials,
		generators:  cfg.Generators,
		downloader:  cfg.Downloader,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o, nil
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateGenerateInput(input); err != nil {
		return nil, err
	}

	loaded, err := o.deckRepo.Load(ctx, deckfile.LoadInput{Path: input.DeckPath})
	if err != nil {
		return nil, err
	}
	cards := loaded.Deck.Cards
	if len(cards) == 0 {
		return nil, errors.EmptyResultf("no cards found in deck %s", input.DeckPath)
	}

	apiKey, ok := o.credentials()
	if !ok {
		return nil, errors.Unauthenticated("image service credential is not set")
	}
	generator, err := o.generators(apiKey)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(input.ArtDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create art dir %s", input.ArtDir)
	}

	results := make([]CardResult, 0, len(cards))
	for i := range cards {
		if err := ctx.Err(); err != nil {
			results = append(results, CardResult{
				Title:  cards[i].Title,
				Status: CardFailed,
				Err:    errors.WrapWithCode(err, errors.CodeCanceled, "art run interrupted"),
			})
			continue
		}
		results = append(results, o.processCard(ctx, generator, input, &cards[i]))
	}
	if ctx.Err() != nil {
		o.logger.Warn("Art run interrupted, saving completed cards", "deck", input.DeckPath)
	}

	// Completed cards are saved even after an interrupt
	if _, err := o.deckRepo.Save(context.WithoutCancel(ctx), deckfile.SaveInput{
		Path: input.DeckPath,
		Deck: &deck.Deck{Cards: cards},
	}); err != nil {
		return nil, err
	}

	output := &GenerateOutput{DeckPath: input.DeckPath, Results: results}
	o.logger.Info("Art run complete",
		"deck", input.DeckPath,
		"version", input.Version,
		"generated", output.Count(CardGenerated),
		"reused", output.Count(CardReused),
		"failed", output.Count(CardFailed))

	return output, nil
}

// processCard never panics out; any failure becomes a CardFailed result
func (o *orchestrator) processCard(
	ctx context.Context,
	generator imagegen.Generator,
	input *GenerateInput,
	card *deck.Card,
) (result CardResult) {
	result = CardResult{Title: card.Title}
	defer func() {
		if r := recover(); r != nil {
			result.Status = CardFailed
			result.Err = errors.Internalf("panic while generating art: %v", r)
			o.logger.Error("Card art failed unexpectedly", "card", card.Title, "error", result.Err)
		}
	}()

	if strings.TrimSpace(card.Title) == "" {
		result.Status = CardFailed
		result.Err = errors.MalformedRecord("card has no title")
		o.logger.Warn("Skipping card without title")
		return result
	}

	fileName := FileName(card.Title, input.Version)
	imagePath := filepath.Join(input.ArtDir, fileName)
	recorded := RelativePath(input.DeckPath, input.ArtDir, fileName)
	text := prompt.Build(prompt.Input{
		Title:          card.Title,
		Description:    card.Description,
		CharacterStyle: input.CharacterStyle,
		Suffix:         input.PromptSuffix,
	})
	result.Path = recorded

	if _, err := os.Stat(imagePath); err == nil {
		card.AddArtVersion(deck.ArtVersion{Tag: input.Version, Path: recorded, Prompt: text})
		result.Status = CardReused
		o.logger.Info("Art already exists", "card", card.Title, "path", imagePath)
		return result
	}

	data, err := o.render(ctx, generator, input, text)
	if err != nil {
		result.Status = CardFailed
		result.Err = err
		if ctx.Err() != nil {
			return result
		}
		result.Diagnostic = o.writeDiagnostic(input, card.Title, text, err)
		o.logger.Error("Failed to generate art",
			"card", card.Title,
			"status", errors.GetMeta(err)[imagegen.MetaStatus],
			"body", errors.GetMeta(err)[imagegen.MetaBody],
			"error", err)
		return result
	}

	if err := atomicfile.Write(imagePath, data); err != nil {
		result.Status = CardFailed
		result.Err = errors.Wrapf(err, "failed to save art for %s", card.Title)
		o.logger.Error("Failed to save art", "card", card.Title, "error", err)
		return result
	}

	card.AddArtVersion(deck.ArtVersion{Tag: input.Version, Path: recorded, Prompt: text})
	result.Status = CardGenerated
	o.logger.Info("Art generated", "card", card.Title, "path", imagePath)
	return result
}

// render requests the image and returns the bytes of the first result
func (o *orchestrator) render(
	ctx context.Context,
	generator imagegen.Generator,
	input *GenerateInput,
	text string,
) ([]byte, error) {
	out, err := generator.Generate(ctx, &imagegen.GenerateInput{
		Prompt: text,
		Size:   input.Size,
		N:      input.N,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Images) == 0 {
		return nil, errors.Unavailable("image service returned no images")
	}

	img := out.Images[0]
	switch {
	case img.URL != "":
		return o.downloader.Download(ctx, img.URL)
	case img.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "image service returned invalid base64")
		}
		return data, nil
	default:
		return nil, errors.Unavailable("image result has neither url nor data")
	}
}

type diagnostic struct {
	Title   string `json:"title"`
	Version string `json:"version"`
	Status  any    `json:"status"`
	Body    any    `json:"body"`
	Error   string `json:"error"`
	Prompt  string `json:"prompt"`
}

// writeDiagnostic records a failed request next to the art and returns its
// path, or "" when the artifact could not be written.
func (o *orchestrator) writeDiagnostic(input *GenerateInput, title, text string, cause error) string {
	meta := errors.GetMeta(cause)
	name := fmt.Sprintf("%s_error_%s.json", safeTitle(title), o.clock.Now().Format(diagnosticTimeFormat))
	path := filepath.Join(input.ArtDir, name)

	err := atomicfile.WriteJSON(path, diagnostic{
		Title:   title,
		Version: input.Version,
		Status:  meta[imagegen.MetaStatus],
		Body:    meta[imagegen.MetaBody],
		Error:   cause.Error(),
		Prompt:  text,
	})
	if err != nil {
		o.logger.Warn("Failed to write diagnostic", "card", title, "path", path, "error", err)
		return ""
	}
	return path
}

func (o *orchestrator) Normalize(ctx context.Context, input *NormalizeInput) (*NormalizeOutput, error) {
	if input == nil || strings.TrimSpace(input.DeckPath) == "" {
		return nil, errors.InvalidArgument("deck path is required")
	}

	loaded, err := o.deckRepo.Load(ctx, deckfile.LoadInput{Path: input.DeckPath})
	if err != nil {
		return nil, err
	}

	changed := 0
	for i := range loaded.Deck.Cards {
		if normalizeCard(&loaded.Deck.Cards[i]) {
			changed++
		}
	}

	output := &NormalizeOutput{DeckPath: input.DeckPath, Changed: changed}
	if changed == 0 {
		o.logger.Info("No art paths needed normalizing", "deck", input.DeckPath)
		return output, nil
	}

	if _, err := o.deckRepo.Save(ctx, deckfile.SaveInput{Path: input.DeckPath, Deck: loaded.Deck}); err != nil {
		return nil, err
	}
	output.Rewritten = true
	o.logger.Info("Normalized art paths", "deck", input.DeckPath, "cards", changed)
	return output, nil
}

func normalizeCard(card *deck.Card) bool {
	changed := false
	if fixed := strings.ReplaceAll(card.ArtURL, `\`, "/"); fixed != card.ArtURL {
		card.ArtURL = fixed
		changed = true
	}
	for i := range card.ArtVersions {
		v := &card.ArtVersions[i]
		if fixed := strings.ReplaceAll(v.Path, `\`, "/"); fixed != v.Path {
			v.Path = fixed
			changed = true
		}
	}
	return changed
}

func validateGenerateInput(input *GenerateInput) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("deck_path", input.DeckPath, vb)
	errors.ValidateRequired("art_dir", input.ArtDir, vb)
	errors.ValidateRequired("size", input.Size, vb)
	errors.ValidateRequired("version", input.Version, vb)
	errors.ValidateMin("n", input.N, 1, vb)
	if input.Size != "" && !sizePattern.MatchString(input.Size) {
		vb.Fieldf("size", "must look like 1024x1024, got %q", input.Size)
	}
	if strings.ContainsAny(input.Version, `/\`) {
		vb.Field("version", "must not contain path separators")
	}

	return vb.Build()
}

// FileName is the image file for a card title and version tag
func FileName(title, version string) string {
	return fmt.Sprintf("%s_%s.png", safeTitle(title), version)
}

// RelativePath is the art path recorded on a card: the image location
// relative to the deck file's directory, with forward slashes. When no
// relative path exists the absolute path is used.
func RelativePath(deckPath, artDir, fileName string) string {
	target := filepath.Join(artDir, fileName)

	deckDir, err := filepath.Abs(filepath.Dir(deckPath))
	if err != nil {
		return filepath.ToSlash(target)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return filepath.ToSlash(target)
	}

	rel, err := filepath.Rel(deckDir, absTarget)
	if err != nil {
		return filepath.ToSlash(absTarget)
	}
	return filepath.ToSlash(rel)
}

func safeTitle(title string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", `\`, "_")
	return r.Replace(strings.TrimSpace(title))
}
