package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func testRun(id string, started time.Time) Run {
	return Run{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Model:      "gpt-4-turbo",
		InputDir:   "/notes",
		OutputDir:  "/notes/flashcards",
		Generated:  2,
		Skipped:    1,
		Failed:     0,
		Cards:      5,
		Tokens:     1200,
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")

	s, err := Open(types.HistoryConfig{Path: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	run := testRun("run-1", started)
	files := []FileRecord{
		{RelPath: "france.md", Status: "generated", Cards: 3, Tokens: 700},
		{RelPath: "spain.md", Status: "failed", Error: "card generation failed: boom"},
	}

	if err := s.RecordRun(ctx, run, files); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs() returned %d runs, want 1", len(runs))
	}

	got := runs[0]
	if got.ID != "run-1" || got.Model != "gpt-4-turbo" || got.Tokens != 1200 {
		t.Errorf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if !got.FinishedAt.Equal(started.Add(42 * time.Second)) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, started.Add(42*time.Second))
	}

	recs, err := s.Files(ctx, "run-1")
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Files() returned %d records, want 2", len(recs))
	}
	if recs[0].RelPath != "france.md" || recs[0].Status != "generated" || recs[0].Cards != 3 {
		t.Errorf("unexpected first record: %+v", recs[0])
	}
	if recs[1].Status != "failed" || recs[1].Error != "card generation failed: boom" {
		t.Errorf("unexpected second record: %+v", recs[1])
	}
	if recs[0].RunID != "run-1" || recs[1].RunID != "run-1" {
		t.Errorf("records not linked to run: %+v", recs)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))
		if err := s.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := s.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Runs(2) returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Errorf("Runs(2) order = [%s, %s], want [run-2, run-1]", runs[0].ID, runs[1].ID)
	}
}

func TestFilesUnknownRun(t *testing.T) {
	s := testStore(t)

	recs, err := s.Files(context.Background(), "no-such-run")
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Files() returned %d records, want 0", len(recs))
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db")}
	ctx := context.Background()

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	run := testRun("run-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err := s.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer s.Close()

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" {
		t.Errorf("reopened store lost data: %+v", runs)
	}
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := testRun("run-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err := s.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportJSON(ctx, &buf, 0); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var runs []Run
	if err := json.Unmarshal(buf.Bytes(), &runs); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" || runs[0].Cards != 5 {
		t.Errorf("unexpected export: %+v", runs)
	}
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := testRun("run-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err := s.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportYAML(ctx, &buf, 0); err != nil {
		t.Fatalf("ExportYAML() error = %v", err)
	}

	var runs []Run
	if err := yaml.Unmarshal(buf.Bytes(), &runs); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(runs) != 1 || runs[0].Model != "gpt-4-turbo" {
		t.Errorf("unexpected export: %+v", runs)
	}
}
