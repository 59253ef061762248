package deck

import (
	"encoding/json"
	"fmt"
)

var cardKeys = []string{
	"title", "level", "school", "description", "casting_time", "duration",
	"range", "components", "source", "art_url", "art_versions",
}

// CurrentArt returns the latest art version, or nil when the card has none
func (c *Card) CurrentArt() *ArtVersion {
	if len(c.ArtVersions) == 0 {
		return nil
	}
	return &c.ArtVersions[len(c.ArtVersions)-1]
}

// AddArtVersion records v as the card's current art.
// An existing entry with the same tag is replaced, so the history holds at
// most one entry per tag and the latest one is always last.
func (c *Card) AddArtVersion(v ArtVersion) {
	kept := c.ArtVersions[:0]
	for _, existing := range c.ArtVersions {
		if existing.Tag != v.Tag {
			kept = append(kept, existing)
		}
	}
	c.ArtVersions = append(kept, v)
	c.ArtURL = v.Path
}

// UnmarshalJSON decodes the known card keys and stashes everything else
func (c *Card) UnmarshalJSON(data []byte) error {
	type plain Card
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range cardKeys {
		delete(all, key)
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*c = Card(p)
	return nil
}

// MarshalJSON writes the known keys followed by any preserved extras
func (c Card) MarshalJSON() ([]byte, error) {
	type plain Card
	data, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return data, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, known := merged[k]; known {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON accepts the current {tag, path, prompt} object and the older
// bare-path string form.
func (v *ArtVersion) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*v = ArtVersion{Path: path}
		return nil
	}

	type plain ArtVersion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("art version must be a string or object: %w", err)
	}
	*v = ArtVersion(p)
	return nil
}
