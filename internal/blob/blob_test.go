package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSaveAndResolve(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/media/")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	ref, err := store.Save(context.Background(), ".png", strings.NewReader("not really a png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("expected .png suffix, got %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(dir, ref))
	if err != nil {
		t.Fatalf("read stored blob: %v", err)
	}
	if string(data) != "not really a png" {
		t.Fatalf("unexpected blob content: %q", data)
	}

	if got := store.URL(ref); got != "/media/"+ref {
		t.Fatalf("unexpected URL: %q", got)
	}
	if got := store.URL(""); got != "" {
		t.Fatalf("empty ref must resolve to empty URL, got %q", got)
	}
}

func TestDiskStoreRejectsHostileExtensions(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	for _, ext := range []string{"../../etc/passwd", ".p/ng", ".reallylongext", ".PNG "} {
		ref, err := store.Save(context.Background(), ext, strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save(%q): %v", ext, err)
		}
		if strings.ContainsAny(ref, "/\\") {
			t.Fatalf("ref %q escapes the store directory", ref)
		}
	}

	// A plain extension survives case folding.
	ref, err := store.Save(context.Background(), "JPG", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(ref, ".jpg") {
		t.Fatalf("expected lowercase .jpg suffix, got %q", ref)
	}
}
