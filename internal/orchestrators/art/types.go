package art

// GenerateInput defines the request for generating art for every card in a deck
type GenerateInput struct {
	DeckPath       string
	ArtDir         string
	Size           string
	N              int
	PromptSuffix   string
	CharacterStyle string
	Version        string
}

// CardStatus is the outcome for one card
type CardStatus string

const (
	// CardGenerated means a new image was generated and saved
	CardGenerated CardStatus = "generated"
	// CardReused means the image for this title and version already existed
	CardReused CardStatus = "reused"
	// CardFailed means the card was left unchanged
	CardFailed CardStatus = "failed"
)

// CardResult is the typed per-card outcome
type CardResult struct {
	Title  string
	Status CardStatus
	Path   string
	// Diagnostic is the error artifact written for a service failure
	Diagnostic string
	Err        error
}

// GenerateOutput summarizes an art run. The deck is rewritten even when
// every card failed.
type GenerateOutput struct {
	DeckPath string
	Results  []CardResult
}

// Count returns how many cards ended with status
func (o *GenerateOutput) Count(status CardStatus) int {
	n := 0
	for _, r := range o.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// NormalizeInput defines the request for cleaning art paths in a deck
type NormalizeInput struct {
	DeckPath string
}

// NormalizeOutput reports whether the deck needed rewriting
type NormalizeOutput struct {
	DeckPath  string
	Changed   int
	Rewritten bool
}
