package mailer

import "context"

// Message is one summary ready for delivery
type Message struct {
	ID             string
	Source         string
	Summary        string
	TranscriptPath string
}

// Mailer delivers finished summaries
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
