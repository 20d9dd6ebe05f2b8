package domain

// Message is a normalized Gmail inbox message. Transient: returned to the
// caller, never persisted.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
}
