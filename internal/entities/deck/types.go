// Package deck holds the spell, card and deck records that flow through the
// pipeline and the JSON shapes they are persisted in.
package deck

// Source tags every card converted from SRD data
const Source = "SRD"

// Defaults for fields a spell record may leave out
const (
	DefaultRange       = "Self"
	DefaultDuration    = "Instantaneous"
	DefaultCastingTime = "1 action"
	NoDescription      = "No description"
)

// Spell is one validated SRD spell record.
// After repair Index, Name, School and Classes are non-empty and Level >= 0.
type Spell struct {
	Index       string   `json:"index"`
	Name        string   `json:"name"`
	Level       int      `json:"level"` // 0 for cantrips
	School      string   `json:"school"`
	Classes     []string `json:"classes"`
	Desc        []string `json:"desc"`
	Range       string   `json:"range"`
	Duration    string   `json:"duration"`
	CastingTime string   `json:"casting_time"`
	Components  []string `json:"components"`
}

// ArtVersion is one generated artwork for a card
type ArtVersion struct {
	Tag    string `json:"tag"`
	Path   string `json:"path"`
	Prompt string `json:"prompt"`
}

// Card is the renderable projection of a Spell.
//
// ArtURL, when set by the art engine, equals the Path of the last entry in
// ArtVersions. Keys the pipeline does not know about are kept in Extra so a
// deck edited by another tool survives a rewrite.
type Card struct {
	Title       string       `json:"title"`
	Level       int          `json:"level"`
	School      string       `json:"school"`
	Description string       `json:"description"`
	CastingTime string       `json:"casting_time"`
	Duration    string       `json:"duration"`
	Range       string       `json:"range"`
	Components  []string     `json:"components"`
	Source      string       `json:"source"`
	ArtURL      string       `json:"art_url,omitempty"`
	ArtVersions []ArtVersion `json:"art_versions,omitempty"`

	Extra map[string]any `json:"-"`
}

// Deck is the on-disk document: {"cards": [...]}
type Deck struct {
	Cards []Card `json:"cards"`
}

// FilterSpec selects spells for a deck. Values are lower-cased.
// An empty set does not filter on that axis.
type FilterSpec struct {
	Classes map[string]struct{}
	Levels  map[int]struct{}
	Schools map[string]struct{}
}

// IsEmpty reports whether no axis is filtered
func (f FilterSpec) IsEmpty() bool {
	return len(f.Classes) == 0 && len(f.Levels) == 0 && len(f.Schools) == 0
}
