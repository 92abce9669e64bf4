package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// Request is the input to one summarisation
type Request struct {
	ID          string
	Source      string
	Kind        content.Kind
	Transcript  string
	Instruction string
}

// Summarizer turns a transcript into a markdown summary with a metadata header
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// backend sends a finished prompt to a model and returns its raw answer
type backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
