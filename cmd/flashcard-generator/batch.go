package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lawrence-Godfrey/flashcard-generator/internal/generate"
	"github.com/Lawrence-Godfrey/flashcard-generator/internal/history"
	"github.com/Lawrence-Godfrey/flashcard-generator/internal/process"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/logger"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate flashcards for every Markdown note under a directory",
	Long: `Batch walks a notes directory, generates flashcards for each Markdown
file through the configured chat model, and writes one deck per note to the
output directory, mirroring the input layout. Notes whose deck already
exists are skipped unless --overwrite is set; notes that fail are logged
and the rest of the batch continues.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("input-dir", ".", "directory containing Markdown notes")
	batchCmd.Flags().String("output-dir", "", "directory for generated decks (default: <input-dir>/flashcards)")
	batchCmd.Flags().Bool("overwrite", false, "regenerate decks that already exist")
	batchCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
	batchCmd.Flags().String("model", "", "chat model identifier (default gpt-4-turbo)")
	batchCmd.Flags().String("api-key", "", "OpenAI API key (overrides OPENAI_API_KEY and .secrets/)")
	batchCmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	batchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	batchCmd.Flags().String("style", "", "card output style (default obsidian-spaced-repetition)")
	batchCmd.Flags().Bool("include-tag", true, "prefix each deck with the #flashcards tag")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	fmtCfg, err := formatConfig(cmd)
	if err != nil {
		return err
	}

	genCfg := generatorConfig(cmd)
	backend, err := generate.NewOpenAIBackend(genCfg)
	if err != nil {
		return err
	}

	inputDir, _ := cmd.Flags().GetString("input-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = process.DefaultOutputDir(inputDir)
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	job := process.Job{
		Processing: types.ProcessingConfig{
			InputDir:  inputDir,
			OutputDir: outputDir,
			Overwrite: overwrite,
		},
		Format: fmtCfg,
	}

	started := time.Now()
	summary, err := process.ProcessTree(context.Background(), backend, job, log)
	if err != nil {
		return err
	}

	recordHistory(cmd, genCfg.Model, job, started, summary, log)

	if summary.HasFailures() {
		return fmt.Errorf("%d note(s) failed card generation", summary.Failed)
	}
	return nil
}

// recordHistory writes the run to the history database. History is an
// observability side channel, so failures here warn and never fail the batch.
func recordHistory(cmd *cobra.Command, model string, job process.Job, started time.Time, summary process.Summary, log *logger.Logger) {
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}

	store, err := history.Open(types.HistoryConfig{Path: viper.GetString("history_db")})
	if err != nil {
		log.Info("history disabled: %v", err)
		return
	}
	defer store.Close()

	run := history.Run{
		ID:         uuid.NewString(),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Model:      model,
		InputDir:   job.Processing.InputDir,
		OutputDir:  job.Processing.OutputDir,
		Generated:  summary.Generated,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
		Cards:      summary.Cards,
		Tokens:     summary.Tokens,
	}

	files := make([]history.FileRecord, 0, len(summary.Files))
	for _, f := range summary.Files {
		files = append(files, history.FileRecord{
			RunID:   run.ID,
			RelPath: f.RelPath,
			Status:  f.Status,
			Cards:   f.Cards,
			Tokens:  f.Tokens,
			Error:   f.Error,
		})
	}

	if err := store.RecordRun(context.Background(), run, files); err != nil {
		log.Info("recording run history: %v", err)
	}
}
