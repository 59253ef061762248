package srd

import (
	"fmt"
	"strings"

	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

// convertSpell maps a dnd5e-api spell onto the raw spell record.
// Rules text and components come from text; without it Desc is assembled
// from the structured fields the entity carries.
func convertSpell(index string, spell *entities.Spell, text *SpellText) *deck.Spell {
	out := &deck.Spell{
		Index:       spell.Key,
		Name:        spell.Name,
		Level:       spell.SpellLevel,
		Range:       spell.Range,
		Duration:    spell.Duration,
		CastingTime: spell.CastingTime,
		Classes:     []string{},
		Components:  []string{},
		Desc:        buildDesc(spell),
	}
	if out.Index == "" {
		out.Index = index
	}

	if text != nil {
		if paragraphs := text.Paragraphs(); len(paragraphs) > 0 {
			out.Desc = paragraphs
		}
		for _, component := range text.Components {
			if component != "" {
				out.Components = append(out.Components, component)
			}
		}
	}

	if spell.SpellSchool != nil {
		out.School = spell.SpellSchool.Name
	}

	for _, class := range spell.SpellClasses {
		if class != nil && class.Name != "" {
			out.Classes = append(out.Classes, class.Name)
		}
	}

	return out
}

func buildDesc(spell *entities.Spell) []string {
	var parts []string

	if spell.SpellDamage != nil {
		damage := "Deals"
		if spell.SpellDamage.SpellDamageAtSlotLevel != nil {
			if base := baseDamage(spell.SpellLevel, spell.SpellDamage.SpellDamageAtSlotLevel); base != "" {
				damage += " " + base
			}
		}
		if spell.SpellDamage.SpellDamageType != nil {
			damage += " " + strings.ToLower(spell.SpellDamage.SpellDamageType.Name)
		}
		parts = append(parts, damage+" damage.")
	}

	if spell.DC != nil {
		save := "Targets make a saving throw"
		if spell.DC.DCType != nil {
			save = fmt.Sprintf("Targets make a %s saving throw", spell.DC.DCType.Name)
		}
		if spell.DC.DCSuccess != "" && spell.DC.DCSuccess != "none" {
			save += fmt.Sprintf(", taking %s on a success", spell.DC.DCSuccess)
		}
		parts = append(parts, save+".")
	}

	if spell.AreaOfEffect != nil && spell.AreaOfEffect.Type != "" {
		parts = append(parts, fmt.Sprintf("Affects a %d-foot %s.", spell.AreaOfEffect.Size, spell.AreaOfEffect.Type))
	}

	var properties []string
	if spell.Ritual {
		properties = append(properties, "ritual")
	}
	if spell.Concentration {
		properties = append(properties, "concentration")
	}
	if len(properties) > 0 {
		parts = append(parts, fmt.Sprintf("Requires %s.", strings.Join(properties, " and ")))
	}

	return parts
}

// baseDamage returns the damage at the spell's own slot level
func baseDamage(level int, slots *entities.SpellDamageAtSlotLevel) string {
	switch level {
	case 0, 1:
		return slots.FirstLevel
	case 2:
		return slots.SecondLevel
	case 3:
		return slots.ThirdLevel
	case 4:
		return slots.FourthLevel
	case 5:
		return slots.FifthLevel
	case 6:
		return slots.SixthLevel
	case 7:
		return slots.SeventhLevel
	case 8:
		return slots.EighthLevel
	case 9:
		return slots.NinthLevel
	default:
		return ""
	}
}
