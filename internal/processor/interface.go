package processor

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/cache"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// State is a step of the pipeline
type State int

const (
	StateDetecting State = iota + 1
	StateAcquiring
	StateTranscribing
	StateSummarizing
	StateDelivering
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDetecting:
		return "detecting"
	case StateAcquiring:
		return "acquiring"
	case StateTranscribing:
		return "transcribing"
	case StateSummarizing:
		return "summarizing"
	case StateDelivering:
		return "delivering"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Options control a single run
type Options struct {
	Force       bool
	Mode        content.Kind
	Instruction string
	Email       bool
}

// Result describes the outcome of one reference
type Result struct {
	ID             string
	Source         string
	Kind           content.Kind
	State          State
	FailedAt       State
	TranscriptPath string
	SummaryPath    string
	Summary        string
	EmailSent      bool
	DeliveryErr    error
	Cached         []cache.Stage
}

// BatchReport collects the results of a sequential batch run
type BatchReport struct {
	Results []*Result
	Errors  []error
	Failed  int
}

// Processor runs references through detection, acquisition, transcription,
// summarisation and delivery
type Processor interface {
	Process(ctx context.Context, reference string, opts Options) (*Result, error)
	ProcessBatch(ctx context.Context, references []string, opts Options) BatchReport
	Sweep(ctx context.Context)
}

// Detector classifies a reference
type Detector interface {
	Detect(ctx context.Context, ref content.Reference, override content.Kind) (content.Kind, error)
}
