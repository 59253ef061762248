package imagegen_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-forge/internal/clients/imagegen"
	"github.com/KirkDiggler/deck-forge/internal/errors"
)

type ImageGenTestSuite struct {
	suite.Suite
	ctx      context.Context
	server   *httptest.Server
	handler  http.HandlerFunc
	lastBody map[string]any
}

func (s *ImageGenTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.lastBody = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
}

func (s *ImageGenTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ImageGenTestSuite) generator() *imagegen.OpenAIGenerator {
	gen, err := imagegen.NewOpenAIGenerator(&imagegen.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: s.server.URL + "/",
		Timeout: 5 * time.Second,
	})
	s.Require().NoError(err)
	return gen
}

func (s *ImageGenTestSuite) TestNewOpenAIGenerator() {
	s.Run("requires an api key", func() {
		_, err := imagegen.NewOpenAIGenerator(&imagegen.OpenAIConfig{})
		s.True(errors.IsUnauthenticated(err))
	})

	s.Run("fills defaults", func() {
		cfg := &imagegen.OpenAIConfig{APIKey: "k"}
		s.Require().NoError(cfg.Validate())
		s.Equal(imagegen.DefaultModel, cfg.Model)
		s.Equal(imagegen.DefaultTimeout, cfg.Timeout)
	})
}

func (s *ImageGenTestSuite) TestGenerate() {
	s.Run("sends prompt size and count", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/images/generations", r.URL.Path)
			s.Equal("Bearer test-key", r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			s.Require().NoError(json.Unmarshal(body, &s.lastBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"created": 1, "data": [{"url": "https://img.example/a.png"}, {"b64_json": "aGk="}]}`))
		}

		out, err := s.generator().Generate(s.ctx, &imagegen.GenerateInput{
			Prompt: "a fireball", Size: "1024x1024", N: 2,
		})

		s.Require().NoError(err)
		s.Equal([]imagegen.Image{
			{URL: "https://img.example/a.png"},
			{B64JSON: "aGk="},
		}, out.Images)
		s.Equal("a fireball", s.lastBody["prompt"])
		s.Equal("1024x1024", s.lastBody["size"])
		s.EqualValues(2, s.lastBody["n"])
		s.Equal(imagegen.DefaultModel, s.lastBody["model"])
	})

	s.Run("non-success carries status and body", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"message": "prompt rejected", "type": "invalid_request_error"}}`))
		}

		_, err := s.generator().Generate(s.ctx, &imagegen.GenerateInput{Prompt: "x"})

		s.Require().Error(err)
		s.True(errors.IsUnavailable(err))
		meta := errors.GetMeta(err)
		s.Equal(http.StatusBadRequest, meta[imagegen.MetaStatus])
		s.Contains(meta[imagegen.MetaBody], "prompt rejected")
	})

	s.Run("empty data is unavailable", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"created": 1, "data": []}`))
		}

		_, err := s.generator().Generate(s.ctx, &imagegen.GenerateInput{Prompt: "x"})
		s.True(errors.IsUnavailable(err))
	})

	s.Run("empty prompt", func() {
		_, err := s.generator().Generate(s.ctx, &imagegen.GenerateInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *ImageGenTestSuite) TestDownload() {
	s.Run("returns the body", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("PNGDATA"))
		}

		data, err := imagegen.NewHTTPDownloader(time.Second).Download(s.ctx, s.server.URL+"/img.png")

		s.Require().NoError(err)
		s.Equal([]byte("PNGDATA"), data)
	})

	s.Run("non-success is unavailable", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("expired"))
		}

		_, err := imagegen.NewHTTPDownloader(time.Second).Download(s.ctx, s.server.URL+"/img.png")

		s.True(errors.IsUnavailable(err))
		meta := errors.GetMeta(err)
		s.Equal(http.StatusForbidden, meta[imagegen.MetaStatus])
		s.Equal("expired", meta[imagegen.MetaBody])
	})

	s.Run("empty url", func() {
		_, err := imagegen.NewHTTPDownloader(0).Download(s.ctx, "")
		s.True(errors.IsInvalidArgument(err))
	})
}

func TestImageGenSuite(t *testing.T) {
	suite.Run(t, new(ImageGenTestSuite))
}
