package deck_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

type CardTestSuite struct {
	suite.Suite
}

func TestCardSuite(t *testing.T) {
	suite.Run(t, new(CardTestSuite))
}

func (s *CardTestSuite) TestAddArtVersionKeepsCurrentPointer() {
	card := deck.Card{Title: "Fireball"}

	card.AddArtVersion(deck.ArtVersion{Tag: "v1", Path: "art/Fireball_v1.png"})
	card.AddArtVersion(deck.ArtVersion{Tag: "v2", Path: "art/Fireball_v2.png"})

	s.Require().Len(card.ArtVersions, 2)
	s.Equal("art/Fireball_v2.png", card.ArtURL)
	s.Equal(card.ArtURL, card.CurrentArt().Path)
}

func (s *CardTestSuite) TestAddArtVersionReplacesSameTag() {
	card := deck.Card{Title: "Fireball"}

	card.AddArtVersion(deck.ArtVersion{Tag: "v1", Path: "art/Fireball_v1.png", Prompt: "first"})
	card.AddArtVersion(deck.ArtVersion{Tag: "v2", Path: "art/Fireball_v2.png"})
	card.AddArtVersion(deck.ArtVersion{Tag: "v1", Path: "art/Fireball_v1.png", Prompt: "again"})

	s.Require().Len(card.ArtVersions, 2)
	s.Equal("v2", card.ArtVersions[0].Tag)
	s.Equal("v1", card.ArtVersions[1].Tag)
	s.Equal("again", card.ArtVersions[1].Prompt)
	s.Equal("art/Fireball_v1.png", card.ArtURL)
}

func (s *CardTestSuite) TestCurrentArtEmpty() {
	card := deck.Card{}
	s.Nil(card.CurrentArt())
}

func (s *CardTestSuite) TestUnknownKeysSurviveRoundTrip() {
	raw := `{"title":"Bless","level":1,"school":"Enchantment","tags":["support"],"desc":["You bless..."]}`

	var card deck.Card
	s.Require().NoError(json.Unmarshal([]byte(raw), &card))
	s.Equal("Bless", card.Title)
	s.Contains(card.Extra, "tags")
	s.Contains(card.Extra, "desc")

	out, err := json.Marshal(card)
	s.Require().NoError(err)

	var back map[string]any
	s.Require().NoError(json.Unmarshal(out, &back))
	s.Equal([]any{"support"}, back["tags"])
	s.Equal("Bless", back["title"])
}

func (s *CardTestSuite) TestLegacyStringArtVersions() {
	raw := `{"title":"Shield","art_url":"../../assets/art/Shield_v1.png","art_versions":["../../assets/art/Shield_v1.png"]}`

	var card deck.Card
	s.Require().NoError(json.Unmarshal([]byte(raw), &card))
	s.Require().Len(card.ArtVersions, 1)
	s.Equal("../../assets/art/Shield_v1.png", card.ArtVersions[0].Path)
	s.Empty(card.ArtVersions[0].Tag)
}

func (s *CardTestSuite) TestDeckRoundTripPreservesOrder() {
	original := deck.Deck{Cards: []deck.Card{
		{Title: "Fireball", Level: 3, School: "Evocation", Components: []string{"V", "S", "M"}, Source: deck.Source},
		{Title: "Bless", Level: 1, School: "Enchantment", Components: []string{}, Source: deck.Source},
		{Title: "Mage Hand", School: "Conjuration", Source: deck.Source, ArtURL: "a.png",
			ArtVersions: []deck.ArtVersion{{Tag: "v1", Path: "a.png", Prompt: "p"}}},
	}}

	data, err := json.Marshal(original)
	s.Require().NoError(err)

	var back deck.Deck
	s.Require().NoError(json.Unmarshal(data, &back))
	s.Equal(original, back)
}

func (s *CardTestSuite) TestFilterSpecIsEmpty() {
	s.True(deck.FilterSpec{}.IsEmpty())
	s.False(deck.FilterSpec{Levels: map[int]struct{}{3: {}}}.IsEmpty())
}
