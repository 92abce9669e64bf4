package processor

import (
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/acquirer"
	"github.com/nguyentantai21042004/digest-flow/internal/cache"
	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/mailer"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
	"github.com/nguyentantai21042004/digest-flow/internal/transcriber"
)

// Deps are the collaborators of the pipeline. Mailer may be nil when email
// is not configured.
type Deps struct {
	Store       *cache.Store
	Detector    Detector
	Acquirer    acquirer.Acquirer
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Mailer      mailer.Mailer
}

type implProcessor struct {
	cfg         *config.Config
	store       *cache.Store
	detector    Detector
	acquirer    acquirer.Acquirer
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	mailer      mailer.Mailer
	logger      logger.Logger
	now         func() time.Time
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return newProcessor(cfg, deps, log)
}

func newProcessor(cfg *config.Config, deps Deps, log logger.Logger) *implProcessor {
	return &implProcessor{
		cfg:         cfg,
		store:       deps.Store,
		detector:    deps.Detector,
		acquirer:    deps.Acquirer,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		mailer:      deps.Mailer,
		logger:      log,
		now:         time.Now,
	}
}
