package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/analysis"
	"github.com/poiesic/compass/core"
	"github.com/poiesic/compass/repair"
	"github.com/poiesic/compass/schema"
	"github.com/poiesic/compass/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	app := newApp(strings.NewReader(stdin), &stdout, &stderr)
	err := app.Run(append([]string{"compass"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestRepairCommand(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		stdout, stderr, err := runApp(t, `{"a":1,}`, "repair", "--report")
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":1}\n", stdout)
		assert.Contains(t, stderr, "stage: lexical degraded: false")
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

		stdout, stderr, err := runApp(t, "", "repair", "--input", path, "--report")
		require.NoError(t, err)
		assert.True(t, repair.Valid(strings.TrimSpace(stdout)))
		assert.Contains(t, stdout, schema.FallbackNote)
		assert.Contains(t, stderr, "stage: fallback degraded: true")
	})

	t.Run("caller error and library stage", func(t *testing.T) {
		stdout, _, err := runApp(t, `{"a":"x","b":`,
			"repair", "--error", "Unexpected end of JSON input", "--library")
		require.NoError(t, err)
		assert.True(t, repair.Valid(strings.TrimSpace(stdout)))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runApp(t, "", "repair", "--input", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read input")
	})
}

func TestJournalCommand(t *testing.T) {
	dir := t.TempDir()

	backend, err := badger.OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := badger.NewRepairRepository(backend)
	require.NoError(t, err)
	_, err = repo.SaveRepair(context.Background(), &core.RepairRecord{
		Source:   "cv.txt",
		Stage:    "lexical",
		Raw:      `{"a":1,}`,
		Repaired: `{"a":1}`,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	stdout, _, err := runApp(t, "", "journal", "--db", dir, "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cv.txt")
	assert.Contains(t, stdout, "lexical: 1")

	_, _, err = runApp(t, "", "journal", "--db", dir, "--limit", "-1")
	assert.Error(t, err)
}

func TestAnalyzeCommandArgs(t *testing.T) {
	dir := t.TempDir()

	t.Run("no files", func(t *testing.T) {
		_, _, err := runApp(t, "", "analyze", "--db", dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no resume files given")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runApp(t, "", "analyze", "--db", dir, filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read resume")
	})

	t.Run("invalid workers", func(t *testing.T) {
		_, _, err := runApp(t, "", "analyze", "--db", dir, "--workers", "0", "cv.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workers")
	})
}

func TestWriteOutcomes(t *testing.T) {
	dir := t.TempDir()
	doc := `{"jobRecommendations":[{"roleTitle":"SRE"}]}`

	var out bytes.Buffer
	err := writeOutcomes(&out, dir, []analysis.Outcome{
		{
			Source:   "resumes/ada.txt",
			Analysis: &ai.Analysis{Document: doc, Stage: repair.StageLexical},
			Summary:  schema.Summarize(doc),
		},
		{Source: "bob.txt", Err: errors.New("connection refused")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 analyses failed")

	assert.Contains(t, out.String(), "resumes/ada.txt\tlexical\tdegraded=false\troles=SRE\tok")
	assert.Contains(t, out.String(), "bob.txt\tfailed\tconnection refused")

	written, err := os.ReadFile(filepath.Join(dir, "ada.json"))
	require.NoError(t, err)
	assert.Equal(t, doc, string(written))
}

func TestLoadEnv(t *testing.T) {
	require.NoError(t, loadEnv(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("COMPASS_LOADENV_TEST=qwen\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("COMPASS_LOADENV_TEST") })

	require.NoError(t, loadEnv(path))
	assert.Equal(t, "qwen", os.Getenv("COMPASS_LOADENV_TEST"))
}

func TestSetupLogger(t *testing.T) {
	_, _, err := runApp(t, "{}", "--log-level", "loud", "repair")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, _, err = runApp(t, "{}", "--log-level", "DEBUG", "repair")
	assert.NoError(t, err)
}
