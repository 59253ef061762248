package deckfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
)

type FileRepositoryTestSuite struct {
	suite.Suite
	repo deckfile.Repository
	dir  string
	ctx  context.Context
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.repo = deckfile.NewFileRepository()
	s.dir = s.T().TempDir()
	s.ctx = context.Background()
}

func (s *FileRepositoryTestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *FileRepositoryTestSuite) TestLoad() {
	s.Run("cards layout", func() {
		path := s.write("cards.json", `{"cards":[{"title":"Fireball","level":3}]}`)

		out, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.Require().NoError(err)
		s.Equal(deckfile.LayoutCards, out.Layout)
		s.Require().Len(out.Deck.Cards, 1)
		s.Equal("Fireball", out.Deck.Cards[0].Title)
	})

	s.Run("spells layout", func() {
		path := s.write("spells.json", `{"spells":[{"title":"Bless"}]}`)

		out, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.Require().NoError(err)
		s.Equal(deckfile.LayoutSpells, out.Layout)
		s.Equal("Bless", out.Deck.Cards[0].Title)
	})

	s.Run("bare list", func() {
		path := s.write("list.json", `[{"title":"Light"},{"title":"Shield"}]`)

		out, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.Require().NoError(err)
		s.Equal(deckfile.LayoutList, out.Layout)
		s.Len(out.Deck.Cards, 2)
	})

	s.Run("object without cards", func() {
		path := s.write("empty.json", `{}`)

		out, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.Require().NoError(err)
		s.Empty(out.Deck.Cards)
	})

	s.Run("missing file", func() {
		_, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: filepath.Join(s.dir, "nope.json")})
		s.True(errors.IsNotFound(err))
	})

	s.Run("invalid json", func() {
		path := s.write("bad.json", `{"cards": [`)

		_, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.True(errors.IsMalformedRecord(err))
	})

	s.Run("empty path", func() {
		_, err := s.repo.Load(s.ctx, deckfile.LoadInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("canceled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()

		_, err := s.repo.Load(ctx, deckfile.LoadInput{Path: "x.json"})
		s.True(errors.IsCanceled(err))
	})
}

func (s *FileRepositoryTestSuite) TestSave() {
	s.Run("round trips in order", func() {
		path := filepath.Join(s.dir, "out", "deck.json")
		in := &deck.Deck{Cards: []deck.Card{
			{Title: "Fireball", Level: 3, School: "Evocation", Components: []string{"V", "S", "M"}, Source: deck.Source},
			{Title: "Bless", Level: 1, School: "Enchantment", Components: []string{"V"}, Source: deck.Source,
				ArtURL:      "art/Bless_v1.png",
				ArtVersions: []deck.ArtVersion{{Tag: "v1", Path: "art/Bless_v1.png", Prompt: "p"}}},
		}}

		saved, err := s.repo.Save(s.ctx, deckfile.SaveInput{Path: path, Deck: in})
		s.Require().NoError(err)
		s.Equal(2, saved.CardCount)

		out, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.Require().NoError(err)
		s.Equal(in.Cards, out.Deck.Cards)
	})

	s.Run("bare list is rewritten with a cards key", func() {
		path := s.write("legacy.json", `[{"title":"Light"}]`)

		out, err := s.repo.Load(s.ctx, deckfile.LoadInput{Path: path})
		s.Require().NoError(err)
		_, err = s.repo.Save(s.ctx, deckfile.SaveInput{Path: path, Deck: out.Deck})
		s.Require().NoError(err)

		raw, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.Contains(string(raw), `"cards": [`)
	})

	s.Run("nil cards are written as an empty list", func() {
		path := filepath.Join(s.dir, "none.json")

		_, err := s.repo.Save(s.ctx, deckfile.SaveInput{Path: path, Deck: &deck.Deck{}})
		s.Require().NoError(err)

		raw, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.JSONEq(`{"cards": []}`, string(raw))
	})

	s.Run("nil deck", func() {
		_, err := s.repo.Save(s.ctx, deckfile.SaveInput{Path: "x.json"})
		s.True(errors.IsInvalidArgument(err))
	})
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}
