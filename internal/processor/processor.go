package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/cache"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/mailer"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
)

// run carries the state of one reference through the pipeline
type run struct {
	ref    content.Reference
	kind   content.Kind
	opts   Options
	result *Result
}

func (r *run) enter(s State) {
	r.result.State = s
}

func (r *run) fail(err error) (*Result, error) {
	r.result.FailedAt = r.result.State
	r.result.State = StateFailed
	return r.result, err
}

func (r *run) cached(stage cache.Stage) {
	r.result.Cached = append(r.result.Cached, stage)
}

// Process runs one reference through the pipeline. Every stage reuses its
// cached artifact unless opts.Force is set.
func (p *implProcessor) Process(ctx context.Context, reference string, opts Options) (*Result, error) {
	startTime := time.Now()
	r := &run{opts: opts, result: &Result{Source: reference, State: StateDetecting}}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing: %s", reference)
	p.logger.Info(ctx, "========================================")

	ref, err := content.ParseReference(reference)
	if err != nil {
		return r.fail(err)
	}
	r.ref = ref

	if ref.IsLocal() {
		if err := checkLocalFile(ref.Path); err != nil {
			return r.fail(err)
		}
	}

	kind, err := p.detector.Detect(ctx, ref, opts.Mode)
	if err != nil {
		return r.fail(err)
	}
	r.kind = kind

	id := content.BuildID(ref, kind, p.now())
	ctx = logger.WithFields(ctx, map[string]interface{}{"id": id})
	r.result.ID = id
	r.result.Kind = kind
	r.result.TranscriptPath = p.store.Path(id, cache.Transcribe)
	r.result.SummaryPath = p.store.Path(id, cache.Summarize)
	p.logger.Info(ctx, "Detected %s, ID: %s", kind, id)

	transcript, err := p.transcript(ctx, r)
	if err != nil {
		return r.fail(err)
	}

	summary, err := p.summary(ctx, r, transcript)
	if err != nil {
		return r.fail(err)
	}
	r.result.Summary = summary

	p.deliver(ctx, r)

	r.enter(StateDone)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed in %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "Transcript: %s", r.result.TranscriptPath)
	p.logger.Info(ctx, "Summary: %s", r.result.SummaryPath)
	p.logger.Info(ctx, "========================================")
	return r.result, nil
}

// transcript returns the transcript text, producing and caching it if needed
func (p *implProcessor) transcript(ctx context.Context, r *run) (string, error) {
	const op = "processor.transcript"
	id := r.result.ID

	if !r.opts.Force && p.store.Exists(id, cache.Transcribe) {
		p.logger.Info(ctx, "Using cached transcript: %s", r.result.TranscriptPath)
		r.cached(cache.Transcribe)
		text, err := p.store.Read(id, cache.Transcribe)
		if err != nil {
			return "", apperrors.TranscriptionFailed(op, err, "read cached transcript")
		}
		return text, nil
	}

	var (
		text string
		err  error
	)
	switch {
	case r.ref.IsLocal() && r.kind.IsText():
		r.enter(StateTranscribing)
		text, err = readLocalText(r.ref.Path)
	case r.ref.IsLocal():
		r.enter(StateTranscribing)
		text, err = p.transcriber.Transcribe(ctx, r.ref.Path)
	default:
		text, err = p.acquireAndTranscribe(ctx, r)
	}
	if err != nil {
		return "", err
	}

	if err := p.store.Write(id, cache.Transcribe, text); err != nil {
		return "", apperrors.TranscriptionFailed(op, err, "save transcript")
	}
	p.logger.Info(ctx, "Transcript saved: %s", r.result.TranscriptPath)
	return text, nil
}

func (p *implProcessor) acquireAndTranscribe(ctx context.Context, r *run) (string, error) {
	id := r.result.ID
	audioPath := p.store.Path(id, cache.Acquire)

	if !r.opts.Force && p.store.Exists(id, cache.Acquire) {
		p.logger.Info(ctx, "Using cached audio: %s", audioPath)
		r.cached(cache.Acquire)
	} else {
		r.enter(StateAcquiring)
		acquired, err := p.acquirer.Acquire(ctx, r.ref, r.kind, id)
		if err != nil {
			return "", err
		}
		if acquired.HasText() {
			p.logger.Info(ctx, "Acquired text via %s, skipping transcription", acquired.Method)
			return acquired.Text, nil
		}
		audioPath = acquired.AudioPath
	}

	r.enter(StateTranscribing)
	return p.transcriber.Transcribe(ctx, audioPath)
}

// summary returns the summary text, producing and caching it if needed
func (p *implProcessor) summary(ctx context.Context, r *run, transcript string) (string, error) {
	const op = "processor.summary"
	id := r.result.ID

	if !r.opts.Force && p.store.Exists(id, cache.Summarize) {
		p.logger.Info(ctx, "Using cached summary: %s", r.result.SummaryPath)
		r.cached(cache.Summarize)
		text, err := p.store.Read(id, cache.Summarize)
		if err != nil {
			return "", apperrors.SummarizationFailed(op, err, "read cached summary")
		}
		return text, nil
	}

	r.enter(StateSummarizing)
	summary, err := p.summarizer.Summarize(ctx, summarizer.Request{
		ID:          id,
		Source:      r.result.Source,
		Kind:        r.kind,
		Transcript:  transcript,
		Instruction: r.opts.Instruction,
	})
	if err != nil {
		return "", err
	}

	if err := p.store.Write(id, cache.Summarize, summary); err != nil {
		return "", apperrors.SummarizationFailed(op, err, "save summary")
	}
	p.logger.Info(ctx, "Summary saved: %s", r.result.SummaryPath)

	if p.cfg.Output.Docx {
		title := mailer.ParseFields(summary).Title
		if title == "" {
			title = id
		}
		if err := summarizer.ExportDocx(title, summary, r.result.SummaryPath, transcript, r.result.TranscriptPath); err != nil {
			p.logger.Warn(ctx, "DOCX export failed: %v", err)
		}
	}
	return summary, nil
}

// deliver emails the summary. Failures are recorded on the result only.
func (p *implProcessor) deliver(ctx context.Context, r *run) {
	if !r.opts.Email {
		return
	}
	if p.mailer == nil {
		p.logger.Info(ctx, "Email not configured, skipping delivery")
		return
	}

	r.enter(StateDelivering)
	err := p.mailer.Send(ctx, mailer.Message{
		ID:             r.result.ID,
		Source:         r.result.Source,
		Summary:        r.result.Summary,
		TranscriptPath: r.result.TranscriptPath,
	})
	if err != nil {
		p.logger.Error(ctx, "Email delivery failed: %v", err)
		r.result.DeliveryErr = err
		return
	}
	r.result.EmailSent = true
}

func checkLocalFile(path string) error {
	const op = "processor.checkLocalFile"

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperrors.UnreachableSource(op, nil, "file not found: "+path)
		}
		return apperrors.UnreachableSource(op, err, "cannot access "+path)
	}
	if info.IsDir() {
		return apperrors.UnsupportedFileType(op, nil, path+" is a directory")
	}
	return nil
}

func readLocalText(path string) (string, error) {
	const op = "processor.readLocalText"

	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.UnreachableSource(op, err, "read "+path)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", apperrors.TranscriptionFailed(op, nil, fmt.Sprintf("transcript file %s is empty", path))
	}
	return text, nil
}
