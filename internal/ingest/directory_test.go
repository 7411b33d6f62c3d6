package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectDirectory(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "b.txt"), "same content")
	write(t, filepath.Join(root, "a.md"), "notes")
	write(t, filepath.Join(root, "sub", "c.TXT"), "same content")
	write(t, filepath.Join(root, "image.png"), "binary")
	write(t, filepath.Join(root, ".hidden", "d.txt"), "secret")
	write(t, filepath.Join(root, ".e.txt"), "secret")

	files, stats, err := CollectDirectory(context.Background(), root, Options{SkipHidden: true})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := []string{"a.md", "b.txt", filepath.Join("sub", "c.TXT")}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
	}
	for i, w := range want {
		rel, _ := filepath.Rel(root, files[i].Path)
		if rel != w {
			t.Errorf("file %d: got %s, want %s", i, rel, w)
		}
	}
	if files[1].Deduplicated || !files[2].Deduplicated {
		t.Errorf("dedupe flags: got %v, %v", files[1].Deduplicated, files[2].Deduplicated)
	}
	if files[1].HashHex != files[2].HashHex {
		t.Errorf("identical content hashed differently")
	}
	if stats.Matched != 3 || stats.Deduplicated != 1 {
		t.Errorf("stats: got %+v", stats)
	}
}

func TestCollectDirectory_Extensions(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.log"), "x")
	write(t, filepath.Join(root, "b.txt"), "y")

	files, _, err := CollectDirectory(context.Background(), root, Options{Extensions: []string{".LOG"}})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "a.log" {
		t.Errorf("got %+v", files)
	}
}

func TestCollectDirectory_EmptyRoot(t *testing.T) {
	if _, _, err := CollectDirectory(context.Background(), " ", Options{}); err == nil {
		t.Error("expected error")
	}
}
