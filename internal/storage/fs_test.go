package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFS(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestFSWriteRead(t *testing.T) {
	fs := newTestFS(t)

	content := []byte("name,base_amount\n")
	if err := fs.Write("foods.csv", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := fs.Read("foods.csv")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("got %q, want %q", got, content)
	}
}

func TestFSWriteLeavesNoTempFiles(t *testing.T) {
	fs := newTestFS(t)

	for i := 0; i < 5; i++ {
		if err := fs.Write("log.csv", []byte("date,food\n")); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	leftovers, err := filepath.Glob(filepath.Join(fs.Root(), ".macrolog-tmp-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestFSRejectsUnsafeNames(t *testing.T) {
	fs := newTestFS(t)

	for _, name := range []string{"", "../escape.csv", "/etc/passwd", "sub/inner.csv", ".."} {
		if err := fs.Write(name, []byte("x")); err == nil {
			t.Errorf("Write(%q) succeeded, want error", name)
		}
		if _, err := fs.Read(name); err == nil {
			t.Errorf("Read(%q) succeeded, want error", name)
		}
		if fs.Exists(name) {
			t.Errorf("Exists(%q) = true, want false", name)
		}
	}
}

func TestFSExists(t *testing.T) {
	fs := newTestFS(t)

	if fs.Exists("goals.json") {
		t.Fatal("Exists before write")
	}
	if err := fs.Write("goals.json", []byte("{}")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !fs.Exists("goals.json") {
		t.Fatal("Exists after write")
	}
}

func TestFSChecksum(t *testing.T) {
	fs := newTestFS(t)

	if got := fs.Checksum("missing.csv"); got != "" {
		t.Fatalf("checksum of missing file = %q, want empty", got)
	}
	if err := fs.Write("foods.csv", []byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := fs.Checksum("foods.csv"), Sum([]byte("abc")); got != want {
		t.Fatalf("checksum = %q, want %q", got, want)
	}
}

func TestNewFSErrors(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("NewFS on missing dir succeeded")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := NewFS(file); err == nil {
		t.Fatal("NewFS on regular file succeeded")
	}
}
