package prompts

// GenerateInput defines the request for writing the prompt file
type GenerateInput struct {
	OutputPath string
	// Suffix is appended to every prompt, e.g. "in watercolor style"
	Suffix         string
	CharacterStyle string
}

// GenerateOutput reports the prompt file that was written
type GenerateOutput struct {
	Path        string
	PromptCount int
	// Dropped counts cached records that failed validation
	Dropped int
}
