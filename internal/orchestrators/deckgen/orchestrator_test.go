package deckgen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/orchestrators/deckgen"
	deckgenmock "github.com/KirkDiggler/deck-forge/internal/orchestrators/deckgen/mock"
	"github.com/KirkDiggler/deck-forge/internal/pkg/logging"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/services/conversion"
	"github.com/KirkDiggler/deck-forge/internal/testutils"
)

const placeholderArt = "https://example.test/placeholder.jpg"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockSelector *deckgenmock.MockSelector
	spellRepo    spells.Repository
	deckRepo     deckfile.Repository
	orchestrator deckgen.Service
	dir          string
	output       string
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSelector = deckgenmock.NewMockSelector(s.ctrl)
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
	s.output = filepath.Join(s.dir, "exports", "deck.json")

	var err error
	s.spellRepo, err = spells.NewFileRepository(&spells.Config{
		Path: filepath.Join(s.dir, "data", "dev", "spells.json"),
	})
	s.Require().NoError(err)
	s.deckRepo = deckfile.NewFileRepository()

	s.orchestrator, err = deckgen.NewOrchestrator(&deckgen.Config{
		SpellRepo: s.spellRepo,
		DeckRepo:  s.deckRepo,
		Converter: conversion.NewSpellConverter(&conversion.SpellConverterConfig{
			ArtPicker: conversion.FixedPicker(placeholderArt),
			Logger:    logging.Discard(),
		}),
		Selector: s.mockSelector,
		Logger:   logging.Discard(),
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) cacheSpells(list []deck.Spell) {
	_, err := s.spellRepo.Save(s.ctx, spells.SaveInput{Spells: list})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) cacheRaw(data string) {
	path := s.spellRepo.Path()
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(data), 0o644))
}

func (s *OrchestratorTestSuite) readDeck() *deck.Deck {
	out, err := s.deckRepo.Load(s.ctx, deckfile.LoadInput{Path: s.output})
	s.Require().NoError(err)
	return out.Deck
}

func (s *OrchestratorTestSuite) titles(d *deck.Deck) []string {
	titles := make([]string, len(d.Cards))
	for i := range d.Cards {
		titles[i] = d.Cards[i].Title
	}
	return titles
}

func (s *OrchestratorTestSuite) assertNoOutput() {
	_, err := os.Stat(s.output)
	s.True(os.IsNotExist(err), "deck file should not be written")
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_RequiresDependencies() {
	_, err := deckgen.NewOrchestrator(&deckgen.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGenerate_ClassFilter() {
	s.cacheSpells(testutils.TestSpells()[:2])

	out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{
		OutputPath: s.output,
		Classes:    "wizard",
	})
	s.Require().NoError(err)

	s.Equal(s.output, out.Path)
	s.Equal(1, out.CardCount)

	d := s.readDeck()
	s.Require().Len(d.Cards, 1)
	s.Equal("Fireball", d.Cards[0].Title)
	s.Equal(placeholderArt, d.Cards[0].ArtURL)
}

func (s *OrchestratorTestSuite) TestGenerate_AllFiltersCombine() {
	s.cacheSpells(testutils.TestSpells())

	out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{
		OutputPath: s.output,
		Classes:    "wizard, cleric",
		Levels:     "0,3",
		Schools:    "evocation",
	})
	s.Require().NoError(err)
	s.Equal(2, out.CardCount)
	s.Equal([]string{"Fireball", "Light"}, s.titles(s.readDeck()))
}

func (s *OrchestratorTestSuite) TestGenerate_RepairsCachedRecords() {
	s.cacheRaw(testutils.SpellsJSON)

	out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{OutputPath: s.output})
	s.Require().NoError(err)

	s.Equal(2, out.CardCount)
	s.Equal(1, out.Dropped)
	s.Equal([]string{"Fireball", "Bless"}, s.titles(s.readDeck()))
}

func (s *OrchestratorTestSuite) TestGenerate_LimitTruncates() {
	s.cacheSpells(testutils.TestSpells())

	out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{
		OutputPath: s.output,
		Limit:      2,
	})
	s.Require().NoError(err)
	s.Equal(2, out.CardCount)
	s.Equal([]string{"Fireball", "Bless"}, s.titles(s.readDeck()))
}

func (s *OrchestratorTestSuite) TestGenerate_Interactive() {
	s.Run("picks by number", func() {
		s.cacheSpells(testutils.TestSpells())
		s.mockSelector.EXPECT().
			Prompt(s.ctx, gomock.Len(4)).
			Return("4, 2", nil)

		out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{
			OutputPath:  s.output,
			Interactive: true,
		})
		s.Require().NoError(err)
		s.Equal(2, out.CardCount)
		s.Equal([]string{"Light", "Bless"}, s.titles(s.readDeck()))
	})

	s.Run("empty reply keeps all then limit applies", func() {
		s.cacheSpells(testutils.TestSpells())
		s.mockSelector.EXPECT().
			Prompt(s.ctx, gomock.Any()).
			Return("  ", nil)

		out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{
			OutputPath:  s.output,
			Interactive: true,
			Limit:       3,
		})
		s.Require().NoError(err)
		s.Equal(3, out.CardCount)
	})
}

func (s *OrchestratorTestSuite) TestGenerate_InteractiveBadTokenIsFatal() {
	s.cacheSpells(testutils.TestSpells())
	s.mockSelector.EXPECT().
		Prompt(s.ctx, gomock.Any()).
		Return("1,foo", nil)

	out, err := s.orchestrator.Generate(s.ctx, &deckgen.GenerateInput{
		OutputPath:  s.output,
		Interactive: true,
	})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsInvalidArgument(err))
	s.Equal("foo", errors.GetMeta(err)["token"])
	s.assertNoOutput()
}

func (s *OrchestratorTestSuite) TestGenerate_Failures() {
	testCases := []struct {
		name   string
		setup  func()
		input  *deckgen.GenerateInput
		isCode func(error) bool
	}{
		{
			name:   "spell file missing",
			setup:  func() {},
			input:  &deckgen.GenerateInput{},
			isCode: errors.IsNotFound,
		},
		{
			name:   "bad level token",
			setup:  func() { s.cacheSpells(testutils.TestSpells()) },
			input:  &deckgen.GenerateInput{Levels: "1,three"},
			isCode: errors.IsInvalidArgument,
		},
		{
			name:   "no valid records",
			setup:  func() { s.cacheRaw(`["not json{", {"name": "X"}]`) },
			input:  &deckgen.GenerateInput{},
			isCode: errors.IsEmptyResult,
		},
		{
			name:   "filter matches nothing",
			setup:  func() { s.cacheSpells(testutils.TestSpells()) },
			input:  &deckgen.GenerateInput{Classes: "wizzard"},
			isCode: errors.IsEmptyResult,
		},
		{
			name:   "negative limit",
			setup:  func() { s.cacheSpells(testutils.TestSpells()) },
			input:  &deckgen.GenerateInput{Limit: -1},
			isCode: errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Require().NoError(os.RemoveAll(filepath.Join(s.dir, "data")))
			tc.setup()
			tc.input.OutputPath = s.output

			out, err := s.orchestrator.Generate(s.ctx, tc.input)
			s.Require().Error(err)
			s.Nil(out)
			s.True(tc.isCode(err), "unexpected error: %v", err)
			s.assertNoOutput()
		})
	}
}

func (s *OrchestratorTestSuite) TestGenerate_InteractiveWithoutSelector() {
	orch, err := deckgen.NewOrchestrator(&deckgen.Config{
		SpellRepo: s.spellRepo,
		DeckRepo:  s.deckRepo,
		Converter: conversion.NewSpellConverter(nil),
	})
	s.Require().NoError(err)

	_, err = orch.Generate(s.ctx, &deckgen.GenerateInput{
		OutputPath:  s.output,
		Interactive: true,
	})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

type SelectionTestSuite struct {
	suite.Suite
}

func (s *SelectionTestSuite) TestParseSelection() {
	testCases := []struct {
		name    string
		line    string
		want    []int
		wantErr bool
	}{
		{name: "blank keeps all", line: "", want: []int{0, 1, 2}},
		{name: "single", line: "2", want: []int{1}},
		{name: "keeps typed order", line: "3, 1", want: []int{2, 0}},
		{name: "duplicates collapse", line: "1,1,2", want: []int{0, 1}},
		{name: "stray commas", line: "1,,3,", want: []int{0, 2}},
		{name: "word", line: "foo", wantErr: true},
		{name: "one bad token", line: "1,two", wantErr: true},
		{name: "zero", line: "0", wantErr: true},
		{name: "past end", line: "4", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := deckgen.ParseSelection(tc.line, 3)
			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.want, got)
		})
	}
}

func TestSelectionTestSuite(t *testing.T) {
	suite.Run(t, new(SelectionTestSuite))
}
