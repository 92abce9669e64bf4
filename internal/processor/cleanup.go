package processor

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// staleAfter is how old an abandoned work directory must be before it is swept
const staleAfter = time.Hour

// Sweep removes work directories and uncommitted cache writes left behind
// by interrupted runs
func (p *implProcessor) Sweep(ctx context.Context) {
	cutoff := p.now().Add(-staleAfter)

	dir := p.store.TempDir()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to read temp dir %s: %v", dir, err)
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		p.cleanupTempPath(ctx, filepath.Join(dir, e.Name()))
	}

	partials, err := p.store.PartialFiles()
	if err != nil {
		p.logger.Warn(ctx, "Failed to list partial cache writes: %v", err)
		return
	}
	for _, path := range partials {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		p.cleanupTempPath(ctx, path)
	}
}

// cleanupTempPath removes a temporary file or directory, logs warning if it fails
func (p *implProcessor) cleanupTempPath(ctx context.Context, path string) {
	if err := os.RemoveAll(path); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp path %s: %v", path, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up stale temp path: %s", path)
	}
}
