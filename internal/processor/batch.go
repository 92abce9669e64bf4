package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// ProcessBatch runs references one at a time. A failure is logged and
// counted and the batch moves on; cancellation stops it.
func (p *implProcessor) ProcessBatch(ctx context.Context, references []string, opts Options) BatchReport {
	var report BatchReport

	for i, ref := range references {
		if err := ctx.Err(); err != nil {
			p.logger.Warn(ctx, "Batch interrupted after %d of %d", i, len(references))
			report.Errors = append(report.Errors, err)
			report.Failed += len(references) - i
			break
		}

		p.logger.Info(ctx, "[%d/%d] %s", i+1, len(references), ref)
		result, err := p.Process(ctx, ref, opts)
		report.Results = append(report.Results, result)
		if err != nil {
			p.logger.Error(ctx, "Failed %s: %v", ref, err)
			report.Errors = append(report.Errors, fmt.Errorf("%s: %w", ref, err))
			report.Failed++
		}
	}

	p.logger.Info(ctx, "Batch finished: %d succeeded, %d failed", len(references)-report.Failed, report.Failed)
	return report
}

// ExpandGlobs resolves batch patterns to supported files, sorted and without
// duplicates. Patterns matching nothing are reported in unmatched.
func ExpandGlobs(patterns []string) (files []string, unmatched []string, err error) {
	seen := map[string]bool{}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}

		var kept int
		for _, m := range matches {
			if !content.IsSupportedFile(m) || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
			kept++
		}
		if kept == 0 {
			unmatched = append(unmatched, pattern)
		}
	}

	sort.Strings(files)
	return files, unmatched, nil
}
