package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/nguyentantai21042004/digest-flow/internal/content"
	"github.com/nguyentantai21042004/digest-flow/internal/processor"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath  string
	verbose     bool
	force       bool
	noEmail     bool
	mode        string
	instruction string
}

func (g *globalFlags) options() (processor.Options, error) {
	opts := processor.Options{
		Force:       g.force,
		Instruction: g.instruction,
		Email:       !g.noEmail,
	}
	if g.mode != "" {
		kind, err := content.ParseKind(g.mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = kind
	}
	return opts, nil
}

// batchError reports a batch with failures. It unwraps to the first failure
// so the exit code reflects its kind.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d references failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var batch []string

	cmd := &cobra.Command{
		Use:   "digest [URL|PATH]",
		Short: "Transcribe and summarise podcasts, videos, articles and local files",
		Example: `  # Summarise a YouTube video (captions are used when available)
  digest "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Summarise a local recording without emailing it
  digest --no-email ~/Downloads/podcast.mp3

  # Force a fresh run and steer the summary
  digest -f -i "focus on hiring advice" https://pca.st/episode/abc

  # Process every mp3 already downloaded
  digest --batch 'audio_files/*.mp3'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(batch) == 0 {
				return cmd.Help()
			}

			opts, err := g.options()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), g)
			if err != nil {
				return err
			}

			if len(batch) > 0 {
				return runBatch(cmd, a, batch, args, opts)
			}

			res, err := a.proc.Process(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVarP(&g.force, "force", "f", false, "Ignore cached artifacts and redo every stage")
	pf.BoolVar(&g.noEmail, "no-email", false, "Do not email the summary")
	pf.StringVarP(&g.mode, "mode", "m", "", "Force content kind: video, podcast, audio, article or transcript")
	pf.StringVarP(&g.instruction, "instruction", "i", "", "Extra instruction appended to the summary prompt")
	cmd.Flags().StringArrayVar(&batch, "batch", nil, "Glob of local files to process (repeatable)")

	cmd.AddCommand(newWatchCmd(g), newCacheCmd(g))
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, patterns, args []string, opts processor.Options) error {
	files, unmatched, err := processor.ExpandGlobs(patterns)
	if err != nil {
		return err
	}
	for _, p := range unmatched {
		a.log.Warn(cmd.Context(), "No supported files match %s", p)
	}

	refs := append(append([]string{}, args...), files...)
	if len(refs) == 0 {
		return errors.New("nothing to process")
	}

	report := a.proc.ProcessBatch(cmd.Context(), refs, opts)
	for _, res := range report.Results {
		if res != nil && res.State == processor.StateDone {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.ID, res.SummaryPath)
		}
	}

	if report.Failed > 0 {
		return &batchError{failed: report.Failed, total: len(refs), first: report.Errors[0]}
	}
	return nil
}

func printResult(w io.Writer, res *processor.Result) {
	fmt.Fprintln(w, summarizer.StripHeader(res.Summary))
	fmt.Fprintf(w, "\nID: %s\nTranscript: %s\nSummary: %s\n", res.ID, res.TranscriptPath, res.SummaryPath)
	switch {
	case res.EmailSent:
		fmt.Fprintln(w, "Email: sent")
	case res.DeliveryErr != nil:
		fmt.Fprintf(w, "Email: failed (%v)\n", res.DeliveryErr)
	}
}
