package conversion

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// PlaceholderArt is the stock art rotation used until real art is generated
var PlaceholderArt = []string{
	"https://images.unsplash.com/photo-1518709268805-4e9042af9f23",
	"https://images.unsplash.com/photo-1534447677768-be436bb09401",
	"https://images.unsplash.com/photo-1500462918059-b1a0cb512f1d",
	"https://images.unsplash.com/photo-1462331940025-496dfbfc7564",
	"https://images.unsplash.com/photo-1519681393784-d120267933ba",
}

// DicePicker rolls a die sized to the rotation to pick placeholder art
type DicePicker struct {
	URLs []string
}

// NewDicePicker creates a picker over the default rotation
func NewDicePicker() *DicePicker {
	return &DicePicker{URLs: PlaceholderArt}
}

// Pick returns one URL from the rotation, or "" when the rotation is empty
func (p *DicePicker) Pick() string {
	if len(p.URLs) == 0 {
		return ""
	}
	if len(p.URLs) == 1 {
		return p.URLs[0]
	}

	roll, err := dice.NewRoll(1, len(p.URLs))
	if err != nil {
		return p.URLs[0]
	}

	idx := roll.GetValue() - 1
	if idx < 0 || idx >= len(p.URLs) {
		return p.URLs[0]
	}
	return p.URLs[idx]
}

// FixedPicker always returns the same reference
type FixedPicker string

// Pick returns the fixed reference
func (f FixedPicker) Pick() string {
	return string(f)
}
