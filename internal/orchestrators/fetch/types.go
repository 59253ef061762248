package fetch

// FetchInput defines the request for downloading SRD spells
type FetchInput struct {
	// Force re-fetches even when the spell file exists
	Force bool
}

// FetchOutput reports the spell file that was written, or that the fetch
// was skipped.
type FetchOutput struct {
	Path       string
	SpellCount int
	Skipped    bool
	CacheHits  int
}

// RepairInput defines the request for cleaning the cached spell file
type RepairInput struct{}

// RepairOutput reports how many records survived
type RepairOutput struct {
	Path    string
	Kept    int
	Dropped int
}
