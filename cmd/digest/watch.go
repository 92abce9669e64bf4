package main

import (
	"context"
	"errors"
	"os"

	"github.com/nguyentantai21042004/digest-flow/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Process new media and text files dropped into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			opts, err := g.options()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), g)
			if err != nil {
				return err
			}

			handler := func(ctx context.Context, path string) error {
				_, err := a.proc.Process(ctx, path, opts)
				return err
			}

			w, err := watcher.New(dir, handler, a.log)
			if err != nil {
				return err
			}
			defer w.Stop()

			a.log.Info(cmd.Context(), "Press Ctrl+C to stop")
			if err := w.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
