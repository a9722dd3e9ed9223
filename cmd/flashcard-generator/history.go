// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lawrence-Godfrey/flashcard-generator/internal/history"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past batch runs from the local history database",
	Long: `History lists recorded batch runs: when they ran, which model they used,
and how many decks, cards, and tokens they produced. Use --run with a run ID
to list the per-file outcomes of one run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to show (0 = default 20)")
	historyCmd.Flags().String("run", "", "show per-file outcomes for a run ID")
	historyCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	historyCmd.Flags().String("db", "", "history database path (default: ~/.config/flashcard-generator/history.db)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("history_db")
	}

	store, err := history.Open(types.HistoryConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	format, _ := cmd.Flags().GetString("format")
	ctx := context.Background()

	if runID != "" {
		recs, err := store.Files(ctx, runID)
		if err != nil {
			return err
		}
		switch format {
		case "text", "":
			return formatFileOutput(recs)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		default:
			return fmt.Errorf("unsupported format %q for --run: use text or json", format)
		}
	}

	switch format {
	case "text", "":
		runs, err := store.Runs(ctx, limit)
		if err != nil {
			return err
		}
		return formatRunOutput(runs)
	case "json":
		return store.ExportJSON(ctx, os.Stdout, limit)
	case "yaml":
		return store.ExportYAML(ctx, os.Stdout, limit)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
}

func formatRunOutput(runs []history.Run) error {
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-12s  %9s  %7s  %6s  %5s  %7s\n",
		"Run", "Started", "Model", "Generated", "Skipped", "Failed", "Cards", "Tokens")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-12s  %9d  %7d  %6d  %5d  %7d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Model,
			r.Generated, r.Skipped, r.Failed, r.Cards, r.Tokens)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func formatFileOutput(recs []history.FileRecord) error {
	if len(recs) == 0 {
		fmt.Println("No file records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-10s  %5s  %7s  %s\n",
		"Note", "Status", "Cards", "Tokens", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, rec := range recs {
		relPath := rec.RelPath
		if len(relPath) > 40 {
			relPath = relPath[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-10s  %5d  %7d  %s\n",
			relPath, rec.Status, rec.Cards, rec.Tokens, rec.Error)
	}

	fmt.Fprintf(os.Stdout, "\n%d files\n", len(recs))
	return nil
}
