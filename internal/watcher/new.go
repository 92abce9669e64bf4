package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

// defaultSettle is how long a new file's size must stay unchanged before it is handled
const defaultSettle = 500 * time.Millisecond

// maxEmptyChecks bounds how many settle periods a zero-byte file is waited on
const maxEmptyChecks = 10

// New creates a Watcher that hands new supported files in inputDir to
// handler, one at a time
func New(inputDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	return newWatcher(inputDir, handler, log, defaultSettle)
}

func newWatcher(inputDir string, handler EventHandler, log logger.Logger, settle time.Duration) (*implWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   settle,
		queue:    make(chan string, 64),
		pending:  map[string]bool{},
	}, nil
}
