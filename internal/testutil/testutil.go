// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempCSV writes contents to a file under t.TempDir and returns its path.
func TempCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
