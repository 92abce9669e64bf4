package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nguyentantai21042004/digest-flow/internal/cache"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
	"github.com/spf13/cobra"
)

func newCacheCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune cached artifacts",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List cached entries and their stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd.Context(), g)
			if err != nil {
				return err
			}
			entries, err := cache.New(cfg.Paths.Base).Entries()
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries)
		},
	}

	rm := &cobra.Command{
		Use:   "rm ID...",
		Short: "Remove every cached artifact of the given identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd.Context(), g)
			if err != nil {
				return err
			}
			store := cache.New(cfg.Paths.Base)
			for _, id := range args {
				if err := store.Remove(id); err != nil {
					return err
				}
				log.Info(cmd.Context(), "Removed %s", id)
			}
			return nil
		},
	}

	cmd.AddCommand(ls, rm)
	return cmd
}

func printEntries(w io.Writer, entries []cache.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "cache is empty")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTAGES")
	for _, e := range entries {
		names := make([]string, 0, len(e.Stages))
		for _, s := range e.Stages {
			names = append(names, s.String())
		}
		date := "-"
		if _, _, d, ok := content.ParseID(e.ID); ok {
			date = d.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, date, strings.Join(names, ","))
	}
	return tw.Flush()
}
