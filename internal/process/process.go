// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process walks a notes tree and orchestrates the per-file
// generate, render, and persist sequence. Files are handled one at a
// time, in lexical walk order, each finishing before the next begins.
package process

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lawrence-Godfrey/flashcard-generator/internal/format"
	"github.com/Lawrence-Godfrey/flashcard-generator/internal/generate"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/logger"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

// noteExt is the filename suffix that marks a file as an input note.
const noteExt = ".md"

// DefaultOutputDir returns the output root used when none is configured:
// a flashcards/ directory under the input root.
func DefaultOutputDir(inputDir string) string {
	return filepath.Join(inputDir, "flashcards")
}

// FileTask pairs one note with its destination. An empty OutputPath means
// the rendered deck is printed instead of written.
type FileTask struct {
	InputPath  string
	OutputPath string
}

// FileResult holds the counts from one processed note.
type FileResult struct {
	Cards  int
	Tokens int
}

// Job configures one directory run. It is built once per invocation and
// read-only for the run's duration.
type Job struct {
	Processing types.ProcessingConfig
	Format     types.FormatConfig
}

// Per-file outcome statuses, as recorded in the run history.
const (
	StatusGenerated = "generated"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// FileOutcome records one file's disposition during a directory run.
type FileOutcome struct {
	RelPath string
	Status  string
	Cards   int
	Tokens  int
	Error   string
}

// Summary holds counts from one directory run.
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
	Cards     int
	Tokens    int
	Files     []FileOutcome
}

// Total returns the number of notes visited.
func (s Summary) Total() int {
	return s.Generated + s.Skipped + s.Failed
}

// HasFailures reports whether any note failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// ProcessFile reads one note, generates cards for it, renders the deck,
// and persists it. With an empty OutputPath the deck is printed to out
// instead of written to disk.
func ProcessFile(ctx context.Context, backend generate.Backend, task FileTask, fmtCfg types.FormatConfig, out io.Writer, log *logger.Logger) (FileResult, error) {
	log.Debug("Reading content from %s.", task.InputPath)
	content, err := os.ReadFile(task.InputPath)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading note %s: %w", task.InputPath, err)
	}

	result, err := generate.GenerateCards(ctx, backend, string(content), log)
	if err != nil {
		return FileResult{}, fmt.Errorf("generating cards for %s: %w", task.InputPath, err)
	}

	rendered, err := format.Render(result.Cards, fmtCfg, log)
	if err != nil {
		return FileResult{}, err
	}

	if task.OutputPath == "" {
		if _, err := fmt.Fprint(out, rendered); err != nil {
			return FileResult{}, fmt.Errorf("printing flashcards: %w", err)
		}
		return FileResult{Cards: len(result.Cards), Tokens: result.Tokens}, nil
	}

	if err := os.MkdirAll(filepath.Dir(task.OutputPath), 0o755); err != nil {
		return FileResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	log.Info("Writing flashcards to %s.", task.OutputPath)
	log.Debug("Writing %q to %s.", rendered, task.OutputPath)
	if err := os.WriteFile(task.OutputPath, []byte(rendered), 0o644); err != nil {
		return FileResult{}, fmt.Errorf("writing flashcards to %s: %w", task.OutputPath, err)
	}

	return FileResult{Cards: len(result.Cards), Tokens: result.Tokens}, nil
}

// ProcessTree walks the notes tree and processes every .md file into a
// mirrored path under the output root. The output subtree itself is never
// walked, so generated decks are not fed back in when the output root
// nests inside the input root. Existing outputs are skipped unless
// Overwrite is set; a skip makes no API call.
//
// A single note's failure does not abort the run: it is logged, counted,
// and the walk continues. Callers decide what failures mean via
// Summary.HasFailures. Setup errors (unreadable input root, cancelled
// context) abort the walk and return the partial summary with an error.
func ProcessTree(ctx context.Context, backend generate.Backend, job Job, log *logger.Logger) (Summary, error) {
	inputDir := job.Processing.InputDir
	if inputDir == "" {
		inputDir = "."
	}
	outputDir := job.Processing.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir(inputDir)
	}

	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving output directory: %w", err)
	}

	var summary Summary

	walkErr := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if abs == absOut || strings.HasPrefix(abs, absOut+string(filepath.Separator)) {
				log.Debug("Skipping %s. Output directory.", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), noteExt) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, rel)

		if _, err := os.Stat(outPath); err == nil && !job.Processing.Overwrite {
			log.Info("Skipping %s. File already exists.", outPath)
			summary.Skipped++
			summary.Files = append(summary.Files, FileOutcome{RelPath: rel, Status: StatusSkipped})
			return nil
		}

		result, err := ProcessFile(ctx, backend, FileTask{InputPath: path, OutputPath: outPath}, job.Format, nil, log)
		if err != nil {
			log.Info("failed %s: %v", rel, err)
			summary.Failed++
			summary.Files = append(summary.Files, FileOutcome{RelPath: rel, Status: StatusFailed, Error: err.Error()})
			return nil
		}

		summary.Generated++
		summary.Cards += result.Cards
		summary.Tokens += result.Tokens
		summary.Files = append(summary.Files, FileOutcome{
			RelPath: rel,
			Status:  StatusGenerated,
			Cards:   result.Cards,
			Tokens:  result.Tokens,
		})
		return nil
	})
	if walkErr != nil {
		return summary, fmt.Errorf("walking %s: %w", inputDir, walkErr)
	}

	log.Info("Batch summary: %d generated, %d skipped, %d failed (total: %d). Generated %d cards. Used %d tokens.",
		summary.Generated, summary.Skipped, summary.Failed, summary.Total(), summary.Cards, summary.Tokens)

	return summary, nil
}
