package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gnomegl/mcavail/internal/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadNames_TrimsAndSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	writeFile(t, path, "Steve\n\n  Alex  \r\n\t\nNotch")

	names, err := LoadNames(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Steve", "Alex", "Notch"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v want %v", names, want)
	}
}

func TestLoadNames_KeepsDuplicatesAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	writeFile(t, path, "b\na\nb\n")

	names, err := LoadNames(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"b", "a", "b"}) {
		t.Fatalf("got %v", names)
	}
}

func TestLoadNames_OnlyBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	writeFile(t, path, "\n   \n\t\n")

	names, err := LoadNames(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
}

func TestLoadNames_MissingFile(t *testing.T) {
	_, err := LoadNames(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	var dataErr *core.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *core.DataError, got %T", err)
	}
}
