package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestContentCommand(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	rootCmd.SetArgs([]string{"content"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("embedded content: %v", err)
	}

	rootCmd.SetArgs([]string{"content", filepath.Join(dir, "missing.yaml")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("journey: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetArgs([]string{"content", bad})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected a validation error")
	}
}
