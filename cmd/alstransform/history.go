package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/alsatian-transform/pkg/ledger"
)

func historyCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)

	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded corpus runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.LedgerPath == "" {
				return errors.New("no ledger configured (set ledger_path or ALS_LEDGER_PATH)")
			}
			lg, err := ledger.Open(a.cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer lg.Close()

			runs, err := lg.ListRuns(limit)
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), runs, format)
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs, 0 for all")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printRuns(w io.Writer, runs []ledger.Run, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if runs == nil {
			runs = []ledger.Run{}
		}
		return enc.Encode(runs)
	case "pretty", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tMODE\tLANG\tSTARTED\tROWS\tSKIPPED\tSTATUS")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				shortID(r.ID), r.Mode, dash(r.Language),
				time.UnixMilli(r.StartedAt).UTC().Format(time.RFC3339),
				r.Rows, r.Skipped, runStatus(r))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func runStatus(r ledger.Run) string {
	switch {
	case !r.Done():
		return "running"
	case r.Error != nil:
		return "failed: " + *r.Error
	default:
		return "ok"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
