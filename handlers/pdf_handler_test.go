package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"authbackend/testutil"

	"go.uber.org/zap"
)

func TestPruneOldExports(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users_100.pdf", "users_200.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	h := &PDFHandler{Repo: testutil.NewFakeUserRepo(), SavePath: dir, Log: zap.NewNop()}
	h.pruneOldExports("users_200.pdf")

	if _, err := os.Stat(filepath.Join(dir, "users_100.pdf")); !os.IsNotExist(err) {
		t.Fatal("superseded export was not removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "users_200.pdf")); err != nil {
		t.Fatalf("latest export was removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Fatalf("unrelated file was removed: %v", err)
	}
}

func TestPruneOldExports_MissingDir(t *testing.T) {
	h := &PDFHandler{Repo: testutil.NewFakeUserRepo(), SavePath: filepath.Join(t.TempDir(), "absent"), Log: zap.NewNop()}
	// Must not panic or create the directory.
	h.pruneOldExports("users_1.pdf")
	if _, err := os.Stat(h.SavePath); !os.IsNotExist(err) {
		t.Fatal("prune created the exports directory")
	}
}
