// Package config loads deckforge settings from defaults, an optional TOML
// file, an optional .env file and the process environment, in increasing
// order of priority.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

const (
	DefaultPath    = "config.toml"
	DefaultEnvFile = ".env"

	EnvEnvironment = "DECKFORGE_ENV"
	EnvDataDir     = "DECKFORGE_DATA_DIR"
	EnvAPIKey      = "OPENAI_API_KEY"
	EnvBaseURL     = "OPENAI_BASE_URL"
	EnvModel       = "OPENAI_MODEL"
	EnvImageModel  = "OPENAI_IMAGE_MODEL"
	EnvRedisAddr   = "REDIS_ADDR"
	EnvLogLevel    = "LOG_LEVEL"

	spellsFile  = "spells.json"
	promptsFile = "spells.txt"
)

var sizePattern = regexp.MustCompile(`^\d+x\d+$`)

// LookupFunc resolves an environment variable
type LookupFunc func(key string) (string, bool)

type Config struct {
	Environment string       `toml:"environment"`
	DataDir     string       `toml:"data_dir"`
	ExportsDir  string       `toml:"exports_dir"`
	PromptsDir  string       `toml:"prompts_dir"`
	Log         LogConfig    `toml:"log"`
	SRD         SRDConfig    `toml:"srd"`
	Art         ArtConfig    `toml:"art"`
	OpenAI      OpenAIConfig `toml:"openai"`
	Redis       RedisConfig  `toml:"redis"`

	// Lookup resolves credentials at call time. It sees the process
	// environment first and the .env file second.
	Lookup LookupFunc `toml:"-"`
}

type LogConfig struct {
	Level           string `toml:"level"`
	Format          string `toml:"format"`
	ReportTimestamp bool   `toml:"report_timestamp"`
}

type SRDConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Concurrency    int    `toml:"concurrency"`
}

type ArtConfig struct {
	Dir            string `toml:"dir"`
	Size           string `toml:"size"`
	N              int    `toml:"n"`
	Version        string `toml:"version"`
	PromptSuffix   string `toml:"prompt_suffix"`
	CharacterStyle string `toml:"character_style"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type OpenAIConfig struct {
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	ImageModel string `toml:"image_model"`
}

// RedisConfig enables the SRD cache when Addr is set
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTLHours int    `toml:"ttl_hours"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Environment: "dev",
		DataDir:     "data",
		ExportsDir:  "exports",
		PromptsDir:  "prompts",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		SRD: SRDConfig{
			TimeoutSeconds: 30,
			Concurrency:    8,
		},
		Art: ArtConfig{
			Dir:            filepath.Join("assets", "art"),
			Size:           "1024x1024",
			N:              1,
			Version:        "v1",
			TimeoutSeconds: 60,
		},
		OpenAI: OpenAIConfig{
			Model:      "gpt-4o-mini",
			ImageModel: "dall-e-3",
		},
		Redis: RedisConfig{
			TTLHours: 24,
		},
		Lookup: os.LookupEnv,
	}
}

// LoadOptions controls where settings come from
type LoadOptions struct {
	// Path of the TOML file. Empty uses DefaultPath and tolerates its absence;
	// an explicit path must exist.
	Path string
	// EnvFile is the .env file. Empty uses DefaultEnvFile; a missing file is skipped.
	EnvFile string
	// Lookup reads the process environment. Defaults to os.LookupEnv.
	Lookup LookupFunc
}

// Load resolves the configuration: env > .env > config file > defaults
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	processLookup := opts.Lookup
	if processLookup == nil {
		processLookup = os.LookupEnv
	}
	cfg.Lookup = func(key string) (string, bool) {
		if v, ok := processLookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		if os.IsNotExist(err) {
			return errors.NotFoundf("config file not found: %s", path)
		}
		return errors.Wrapf(err, "failed to read config %s", path)
	}

	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(c); err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse config %s", path)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read env file %s", path)
	}
	return values, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvEnvironment, &c.Environment},
		{EnvDataDir, &c.DataDir},
		{EnvBaseURL, &c.OpenAI.BaseURL},
		{EnvModel, &c.OpenAI.Model},
		{EnvImageModel, &c.OpenAI.ImageModel},
		{EnvRedisAddr, &c.Redis.Addr},
		{EnvLogLevel, &c.Log.Level},
	}

	for _, o := range overrides {
		if v, ok := c.Lookup(o.key); ok && v != "" {
			*o.target = v
		}
	}
}

// Validate checks the resolved settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("environment", c.Environment, vb)
	errors.ValidateRequired("data_dir", c.DataDir, vb)
	errors.ValidateMin("art.n", c.Art.N, 1, vb)
	errors.ValidateMin("srd.concurrency", c.SRD.Concurrency, 1, vb)
	errors.ValidateRequired("art.version", c.Art.Version, vb)
	if !sizePattern.MatchString(c.Art.Size) {
		vb.Fieldf("art.size", "must look like 1024x1024, got %q", c.Art.Size)
	}
	switch c.Log.Format {
	case "", "text", "json", "logfmt":
	default:
		vb.Fieldf("log.format", "must be text, json or logfmt, got %q", c.Log.Format)
	}

	return vb.Build()
}

// SpellsPath is the cached spell file for the active environment
func (c *Config) SpellsPath() string {
	return filepath.Join(c.DataDir, c.Environment, spellsFile)
}

// PromptsPath is the prompt text file for the active environment
func (c *Config) PromptsPath() string {
	return filepath.Join(c.PromptsDir, c.Environment, promptsFile)
}

// APIKey returns the image and text model credential, if present
func (c *Config) APIKey() (string, bool) {
	lookup := c.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(EnvAPIKey)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SRDTimeout is the per-request timeout for the SRD API
func (c *Config) SRDTimeout() time.Duration {
	return time.Duration(c.SRD.TimeoutSeconds) * time.Second
}

// ArtTimeout is the per-request timeout for image generation and download
func (c *Config) ArtTimeout() time.Duration {
	return time.Duration(c.Art.TimeoutSeconds) * time.Second
}

// RedisTTL is how long cached SRD records live
func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.Redis.TTLHours) * time.Hour
}

// String renders the non-secret settings for the version command
func (c *Config) String() string {
	return "environment=" + c.Environment +
		" data_dir=" + c.DataDir +
		" spells=" + c.SpellsPath() +
		" redis=" + strconv.FormatBool(c.Redis.Addr != "")
}
