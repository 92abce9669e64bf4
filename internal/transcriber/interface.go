package transcriber

import "context"

// Transcriber converts an audio or video file into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (string, error)
}
