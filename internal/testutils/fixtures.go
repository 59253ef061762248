package testutils

import (
	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/testutils/builders"
)

// SpellsJSON is a cached spell file with the shapes seen in the wild: a
// clean record, a string-encoded record and a record missing its classes.
const SpellsJSON = `[
  {"index": "fireball", "name": "Fireball", "level": 3, "school": "Evocation",
   "classes": ["Wizard", "Sorcerer"], "desc": ["A bright streak flashes from your pointing finger."],
   "range": "150 feet", "duration": "Instantaneous", "casting_time": "1 action", "components": ["V", "S", "M"]},
  "{\"index\": \"bless\", \"name\": \"Bless\", \"level\": 1, \"school\": {\"name\": \"Enchantment\"}, \"classes\": [\"Cleric\", \"Paladin\"], \"desc\": \"You bless up to three creatures.\"}",
  {"index": "broken", "name": "Broken", "level": 2, "school": "Illusion"}
]`

// TestSpells returns a small spell list covering several classes, levels
// and schools in a fixed order.
func TestSpells() []deck.Spell {
	return []deck.Spell{
		builders.NewSpellBuilder().WithName("Fireball").WithLevel(3).WithSchool("Evocation").
			WithClasses("Wizard", "Sorcerer").WithDesc("A bright streak flashes from your pointing finger.").Build(),
		builders.NewSpellBuilder().WithName("Bless").WithLevel(1).WithSchool("Enchantment").
			WithClasses("Cleric", "Paladin").WithDesc("You bless up to three creatures.").Build(),
		builders.NewSpellBuilder().WithName("Shield").WithLevel(1).WithSchool("Abjuration").
			WithClasses("Wizard", "Sorcerer").WithDesc("An invisible barrier of magical force appears.").Build(),
		builders.NewSpellBuilder().WithName("Light").WithLevel(0).WithSchool("Evocation").
			WithClasses("Bard", "Cleric", "Wizard").WithDesc("You touch one object.").Build(),
	}
}

// TestDeck returns a deck of plain cards with the given titles
func TestDeck(titles ...string) *deck.Deck {
	d := &deck.Deck{Cards: make([]deck.Card, 0, len(titles))}
	for _, title := range titles {
		d.Cards = append(d.Cards, builders.NewCardBuilder().WithTitle(title).Build())
	}
	return d
}
