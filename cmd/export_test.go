package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stockmentions/internal"
	"stockmentions/testutil"
)

func TestExportCommand(t *testing.T) {
	root := setTestStorage(t)
	id := testutil.WriteSessionFixture(t, root, testutil.NewTestResult(
		time.Date(2025, 7, 7, 21, 0, 32, 0, time.UTC), "wallstreetbets",
		[]internal.SymbolCount{{Symbol: "GME", Mentions: 3}},
	))

	outDir := t.TempDir()
	rootCmd.SetArgs([]string{"export", id, "--out", outDir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, internal.ResultFileJSON)); err != nil {
		t.Errorf("missing exported file %s: %v", internal.ResultFileJSON, err)
	}
}

func TestExportCommand_EmptySessionID(t *testing.T) {
	setTestStorage(t)

	rootCmd.SetArgs([]string{"export", "", "--out", t.TempDir()})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("export should reject an empty session id")
	}
}

func TestExportCommand_MissingSession(t *testing.T) {
	setTestStorage(t)

	rootCmd.SetArgs([]string{"export", "2024-01-01/000000/", "--out", t.TempDir()})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("export should fail for a session that does not exist")
	}
}
