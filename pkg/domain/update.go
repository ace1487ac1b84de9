package domain

// Update is the snapshot delivered to observers after every state change.
type Update struct {
	Transcript []string `json:"transcript"`
	Listening  bool     `json:"listening"`

	// ExtractedData holds only the delta of the last processed utterance.
	ExtractedData map[string]any `json:"extractedData,omitempty"`
	Completed     bool           `json:"completed,omitempty"`

	Step   Step `json:"step"`
	Active bool `json:"active"`

	// Failed is set once recognition errors exhausted the retry policy.
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}
