package deckgen

// GenerateInput defines the request for building a deck from the cached spells
type GenerateInput struct {
	OutputPath string
	// Limit keeps the first N spells after filtering and selection. 0 keeps all.
	Limit int
	// Comma-separated filter values. Empty strings do not filter.
	Classes string
	Levels  string
	Schools string
	// Interactive asks the Selector to narrow the filtered list
	Interactive bool
}

// GenerateOutput reports the deck that was written
type GenerateOutput struct {
	Path      string
	CardCount int
	// Dropped counts cached records that failed validation
	Dropped int
	// Skipped counts spells that failed card conversion
	Skipped int
}
