package spells

import (
	"context"
	"os"

	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/pkg/atomicfile"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
)

// Config holds the configuration for the file repository
type Config struct {
	Path string
}

// Validate ensures all required settings are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", c.Path, vb)
	return vb.Build()
}

type fileRepository struct {
	path string
}

// NewFileRepository creates a spell cache repository backed by one JSON file
func NewFileRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &fileRepository{path: cfg.Path}, nil
}

// Ensure fileRepository implements Repository
var _ Repository = (*fileRepository)(nil)

func (r *fileRepository) Path() string {
	return r.path
}

func (r *fileRepository) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.WrapWithCode(err, errors.CodeCanceled, "exists check canceled")
	}

	_, err := os.Stat(r.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %s", r.path)
}

func (r *fileRepository) Load(ctx context.Context) (*LoadOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "load canceled")
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("spell data not found at %s; run fetch first", r.path).
				WithMeta("path", r.path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", r.path)
	}

	raw, err := repair.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", r.path)
	}

	return &LoadOutput{Path: r.path, Raw: raw}, nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if len(input.Spells) == 0 {
		return nil, errors.EmptyResult("refusing to write an empty spell file")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "save canceled")
	}

	if err := atomicfile.WriteJSON(r.path, input.Spells); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", r.path)
	}

	return &SaveOutput{Path: r.path, SpellCount: len(input.Spells)}, nil
}
