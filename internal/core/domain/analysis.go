package domain

// ExtractedTask is a task proposal extracted from free text by the AI
// gateway. Deadline is an ISO 8601 timestamp, empty when none was found.
type ExtractedTask struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Deadline    string       `json:"deadline,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	Subject     string       `json:"subject,omitempty"`
}

// Analysis is the result of analyzing a piece of text (typically an email
// body) for actionable tasks.
type Analysis struct {
	Tasks   []ExtractedTask `json:"tasks"`
	Summary string          `json:"summary"`
}
