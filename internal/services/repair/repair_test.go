package repair_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
)

type RepairTestSuite struct {
	suite.Suite
	logs     *bytes.Buffer
	repairer *repair.Repairer
}

func (s *RepairTestSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.repairer = repair.New(&repair.Config{
		Logger: slog.New(slog.NewTextHandler(s.logs, nil)),
	})
}

func (s *RepairTestSuite) decode(doc string) repair.RawSpellInput {
	input, err := repair.Decode([]byte(doc))
	s.Require().NoError(err)
	return input
}

func (s *RepairTestSuite) TestDecode() {
	s.Run("list", func() {
		input := s.decode(`[{"name":"a"}]`)
		s.IsType(repair.RawList{}, input)
	})

	s.Run("string wrapped document", func() {
		input := s.decode(`"[]"`)
		s.Equal(repair.RawString("[]"), input)
	})

	s.Run("single mapping", func() {
		input := s.decode(`{"name":"a"}`)
		s.IsType(repair.RawMapping{}, input)
	})

	s.Run("empty data", func() {
		_, err := repair.Decode([]byte("  "))
		s.True(errors.IsMalformedRecord(err))
	})

	s.Run("scalar data", func() {
		_, err := repair.Decode([]byte("42"))
		s.True(errors.IsMalformedRecord(err))
	})
}

func (s *RepairTestSuite) TestValidateAndRepair() {
	s.Run("keeps valid spell with defaults filled", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[
			{"index":"light","name":"Light","level":0,"school":"Evocation","classes":["Wizard"]}
		]`))

		s.Require().Len(out.Spells, 1)
		spell := out.Spells[0]
		s.Equal("light", spell.Index)
		s.Equal(0, spell.Level)
		s.Equal(deck.DefaultRange, spell.Range)
		s.Equal(deck.DefaultDuration, spell.Duration)
		s.Equal(deck.DefaultCastingTime, spell.CastingTime)
		s.Empty(spell.Desc)
		s.NotNil(spell.Components)
		s.Empty(out.Dropped)
	})

	s.Run("decodes string encoded elements", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[
			"{\"index\":\"fireball\",\"name\":\"Fireball\",\"level\":3,\"school\":\"Evocation\",\"classes\":[\"Wizard\"]}"
		]`))

		s.Require().Len(out.Spells, 1)
		s.Equal("Fireball", out.Spells[0].Name)
	})

	s.Run("unwraps a double encoded document", func() {
		inner := `[{"index":"shield","name":"Shield","level":1,"school":"Abjuration","classes":["Wizard"]}]`
		encoded, err := json.Marshal(inner)
		s.Require().NoError(err)

		out := s.repairer.ValidateAndRepair(s.decode(string(encoded)))

		s.Require().Len(out.Spells, 1)
		s.Equal("Shield", out.Spells[0].Name)
	})

	s.Run("normalizes loose field shapes", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[{
			"index": "cure-wounds",
			"name": "Cure Wounds",
			"level": "1",
			"school": {"name": "Evocation"},
			"classes": [{"name": "Cleric"}, "Druid", ""],
			"desc": "A creature you touch regains hit points.",
			"components": "V, S",
			"range": "Touch"
		}]`))

		s.Require().Len(out.Spells, 1)
		spell := out.Spells[0]
		s.Equal(1, spell.Level)
		s.Equal("Evocation", spell.School)
		s.Equal([]string{"Cleric", "Druid"}, spell.Classes)
		s.Equal([]string{"A creature you touch regains hit points."}, spell.Desc)
		s.Equal([]string{"V", "S"}, spell.Components)
		s.Equal("Touch", spell.Range)
	})

	s.Run("single class string becomes a list", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[
			{"index":"a","name":"A","level":2,"school":"Illusion","classes":"Bard"}
		]`))

		s.Require().Len(out.Spells, 1)
		s.Equal([]string{"Bard"}, out.Spells[0].Classes)
	})

	s.Run("drops bad elements without failing", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`["not json{", {"name":"X"}]`))

		s.Empty(out.Spells)
		s.Len(out.Dropped, 2)
		s.True(errors.IsMalformedRecord(out.Dropped[0].Err))
		s.Equal("X", out.Dropped[1].Name)
		s.Contains(out.Dropped[1].Err.Error(), "index")
		s.Contains(s.logs.String(), "No valid spells after validation")
	})

	s.Run("keeps order and drops only the bad one", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[
			{"index":"a","name":"A","level":1,"school":"Evocation","classes":["Wizard"]},
			{"index":"b","name":"B","level":"high","school":"Evocation","classes":["Wizard"]},
			{"index":"c","name":"C","level":2,"school":"Evocation","classes":["Wizard"]}
		]`))

		s.Require().Len(out.Spells, 2)
		s.Equal("A", out.Spells[0].Name)
		s.Equal("C", out.Spells[1].Name)
		s.Require().Len(out.Dropped, 1)
		s.Equal(1, out.Dropped[0].Position)
		s.Equal("B", out.Dropped[0].Name)
	})

	s.Run("rejects negative and fractional levels", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[
			{"index":"a","name":"A","level":-1,"school":"Evocation","classes":["Wizard"]},
			{"index":"b","name":"B","level":1.5,"school":"Evocation","classes":["Wizard"]},
			{"index":"c","name":"C","level":2.0,"school":"Evocation","classes":["Wizard"]}
		]`))

		s.Require().Len(out.Spells, 1)
		s.Equal(2, out.Spells[0].Level)
	})

	s.Run("empty classes list counts as missing", func() {
		out := s.repairer.ValidateAndRepair(s.decode(`[
			{"index":"a","name":"A","level":1,"school":"Evocation","classes":[]}
		]`))

		s.Empty(out.Spells)
		s.Contains(out.Dropped[0].Err.Error(), "classes")
	})

	s.Run("unparsable wrapped document yields nothing", func() {
		out := s.repairer.ValidateAndRepair(repair.RawString("{{"))
		s.Empty(out.Spells)
	})

	s.Run("nil input yields nothing", func() {
		out := s.repairer.ValidateAndRepair(nil)
		s.Empty(out.Spells)
		s.Equal("0 valid, 0 dropped", out.String())
	})
}

func TestRepairSuite(t *testing.T) {
	suite.Run(t, new(RepairTestSuite))
}
