package fetch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/deck-forge/internal/clients/srd"
	srdmock "github.com/KirkDiggler/deck-forge/internal/clients/srd/mock"
	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/orchestrators/fetch"
	"github.com/KirkDiggler/deck-forge/internal/pkg/logging"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/repositories/srdcache"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
	"github.com/KirkDiggler/deck-forge/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockClient   *srdmock.MockClient
	spellRepo    spells.Repository
	orchestrator fetch.Service
	ctx          context.Context
	catalog      map[string]deck.Spell
	refs         []srd.Reference
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = srdmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.spellRepo, err = spells.NewFileRepository(&spells.Config{
		Path: filepath.Join(s.T().TempDir(), "dev", "spells.json"),
	})
	s.Require().NoError(err)

	s.orchestrator, err = fetch.NewOrchestrator(&fetch.Config{
		Client:      s.mockClient,
		SpellRepo:   s.spellRepo,
		Concurrency: 2,
		Logger:      logging.Discard(),
	})
	s.Require().NoError(err)

	s.catalog = make(map[string]deck.Spell)
	s.refs = nil
	for _, spell := range testutils.TestSpells() {
		s.catalog[spell.Index] = spell
		s.refs = append(s.refs, srd.Reference{Index: spell.Index, Name: spell.Name})
	}
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectAPI(times int) {
	s.mockClient.EXPECT().ListSpells(gomock.Any()).Return(s.refs, nil)
	s.mockClient.EXPECT().
		GetSpell(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, index string) (*deck.Spell, error) {
			spell := s.catalog[index]
			return &spell, nil
		}).
		Times(times)
}

func (s *OrchestratorTestSuite) cachedNames() []string {
	loaded, err := s.spellRepo.Load(s.ctx)
	s.Require().NoError(err)

	out := repair.New(&repair.Config{Logger: logging.Discard()}).ValidateAndRepair(loaded.Raw)
	names := make([]string, len(out.Spells))
	for i := range out.Spells {
		names[i] = out.Spells[i].Name
	}
	return names
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_RequiresDependencies() {
	_, err := fetch.NewOrchestrator(&fetch.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestFetch_WritesSpellsInListingOrder() {
	s.expectAPI(4)

	out, err := s.orchestrator.Fetch(s.ctx, &fetch.FetchInput{})
	s.Require().NoError(err)
	s.False(out.Skipped)
	s.Equal(4, out.SpellCount)
	s.Equal(s.spellRepo.Path(), out.Path)
	s.Equal([]string{"Fireball", "Bless", "Shield", "Light"}, s.cachedNames())
}

func (s *OrchestratorTestSuite) TestFetch_SkipsExistingUnlessForced() {
	_, err := s.spellRepo.Save(s.ctx, spells.SaveInput{Spells: testutils.TestSpells()[:1]})
	s.Require().NoError(err)

	out, err := s.orchestrator.Fetch(s.ctx, &fetch.FetchInput{})
	s.Require().NoError(err)
	s.True(out.Skipped)
	s.Equal([]string{"Fireball"}, s.cachedNames())

	s.expectAPI(4)
	out, err = s.orchestrator.Fetch(s.ctx, &fetch.FetchInput{Force: true})
	s.Require().NoError(err)
	s.False(out.Skipped)
	s.Len(s.cachedNames(), 4)
}

func (s *OrchestratorTestSuite) TestFetch_Failures() {
	s.Run("listing fails", func() {
		s.mockClient.EXPECT().ListSpells(gomock.Any()).
			Return(nil, errors.Unavailable("dnd5e api unreachable"))

		_, err := s.orchestrator.Fetch(s.ctx, &fetch.FetchInput{})
		s.True(errors.IsUnavailable(err))
	})

	s.Run("empty listing", func() {
		s.mockClient.EXPECT().ListSpells(gomock.Any()).Return([]srd.Reference{}, nil)

		_, err := s.orchestrator.Fetch(s.ctx, &fetch.FetchInput{})
		s.True(errors.IsEmptyResult(err))
	})

	s.Run("one detail fails", func() {
		s.mockClient.EXPECT().ListSpells(gomock.Any()).Return(s.refs, nil)
		s.mockClient.EXPECT().
			GetSpell(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, index string) (*deck.Spell, error) {
				if index == "shield" {
					return nil, errors.Unavailable("timeout")
				}
				spell := s.catalog[index]
				return &spell, nil
			}).
			AnyTimes()

		_, err := s.orchestrator.Fetch(s.ctx, &fetch.FetchInput{})
		s.True(errors.IsUnavailable(err))
	})

	exists, err := s.spellRepo.Exists(s.ctx)
	s.Require().NoError(err)
	s.False(exists, "failed fetches must not write the spell file")
}

func (s *OrchestratorTestSuite) TestFetch_ReadsThroughRedisCache() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	defer cleanup()
	cache, err := srdcache.NewRedisRepository(&srdcache.Config{Client: client})
	s.Require().NoError(err)

	orch, err := fetch.NewOrchestrator(&fetch.Config{
		Client:    s.mockClient,
		SpellRepo: s.spellRepo,
		Cache:     cache,
		Logger:    logging.Discard(),
	})
	s.Require().NoError(err)

	s.expectAPI(4)
	out, err := orch.Fetch(s.ctx, &fetch.FetchInput{})
	s.Require().NoError(err)
	s.Equal(0, out.CacheHits)

	// Second forced fetch is served from Redis without touching the API
	out, err = orch.Fetch(s.ctx, &fetch.FetchInput{Force: true})
	s.Require().NoError(err)
	s.Equal(4, out.CacheHits)
	s.Equal([]string{"Fireball", "Bless", "Shield", "Light"}, s.cachedNames())
}

func (s *OrchestratorTestSuite) TestRepair() {
	s.Run("rewrites clean records", func() {
		s.Require().NoError(os.MkdirAll(filepath.Dir(s.spellRepo.Path()), 0o755))
		s.Require().NoError(os.WriteFile(s.spellRepo.Path(), []byte(testutils.SpellsJSON), 0o644))

		out, err := s.orchestrator.Repair(s.ctx, &fetch.RepairInput{})
		s.Require().NoError(err)
		s.Equal(2, out.Kept)
		s.Equal(1, out.Dropped)
		s.Equal([]string{"Fireball", "Bless"}, s.cachedNames())
	})

	s.Run("all invalid leaves file unchanged", func() {
		bad := []byte(`["not json{", {"name": "X"}]`)
		s.Require().NoError(os.WriteFile(s.spellRepo.Path(), bad, 0o644))

		_, err := s.orchestrator.Repair(s.ctx, &fetch.RepairInput{})
		s.True(errors.IsEmptyResult(err))

		data, err := os.ReadFile(s.spellRepo.Path())
		s.Require().NoError(err)
		s.Equal(bad, data)
	})

	s.Run("missing file", func() {
		s.Require().NoError(os.Remove(s.spellRepo.Path()))

		_, err := s.orchestrator.Repair(s.ctx, &fetch.RepairInput{})
		s.True(errors.IsNotFound(err))
	})
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
