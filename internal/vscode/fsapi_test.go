package vscode

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFSWriteCreatesParents(t *testing.T) {
	fs := NewFileSystemAPI()
	target := FileURI(filepath.Join(t.TempDir(), "a", "b", "c.txt"))

	if err := fs.WriteFile(target, []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := fs.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("content = %q", data)
	}
}

func TestFSStatKinds(t *testing.T) {
	fs := NewFileSystemAPI()
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	st, err := fs.Stat(FileURI(file))
	if err != nil {
		t.Fatalf("Stat file: %v", err)
	}
	if st.Type != FileTypeFile || st.Size != 1 {
		t.Fatalf("file stat = %+v", st)
	}

	st, err = fs.Stat(FileURI(root))
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if st.Type != FileTypeDirectory {
		t.Fatalf("dir stat type = %v", st.Type)
	}
}

func TestFSErrorMapping(t *testing.T) {
	fs := NewFileSystemAPI()
	missing := FileURI(filepath.Join(t.TempDir(), "nope.txt"))

	_, err := fs.ReadFile(missing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if code := FSErrorCode(err); code != CodeFileNotFound {
		t.Fatalf("code = %v, want %v", code, CodeFileNotFound)
	}

	// Recursive delete of a missing path surfaces FileNotFound rather than
	// succeeding silently.
	err = fs.Delete(missing, DeleteOptions{Recursive: true})
	if FSErrorCode(err) != CodeFileNotFound {
		t.Fatalf("recursive delete code = %v", FSErrorCode(err))
	}
}

func TestFSDeleteNonEmptyDirectory(t *testing.T) {
	fs := NewFileSystemAPI()
	dir := filepath.Join(t.TempDir(), "full")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "child"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fs.Delete(FileURI(dir), DeleteOptions{}); err == nil {
		t.Fatal("non-recursive delete of a populated directory succeeded")
	}
	if err := fs.Delete(FileURI(dir), DeleteOptions{Recursive: true}); err != nil {
		t.Fatalf("recursive delete: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory still present: %v", err)
	}
}

func TestFSRenameAndCopy(t *testing.T) {
	fs := NewFileSystemAPI()
	root := t.TempDir()
	src := FileURI(filepath.Join(root, "src.txt"))
	if err := fs.WriteFile(src, []byte("payload")); err != nil {
		t.Fatal(err)
	}

	moved := FileURI(filepath.Join(root, "sub", "moved.txt"))
	if err := fs.Rename(src, moved); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := fs.Stat(src); FSErrorCode(err) != CodeFileNotFound {
		t.Fatalf("source still present after rename: %v", err)
	}

	copied := FileURI(filepath.Join(root, "copy.txt"))
	if err := fs.Copy(moved, copied); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	data, err := fs.ReadFile(copied)
	if err != nil || string(data) != "payload" {
		t.Fatalf("copied content = %q, err = %v", data, err)
	}
}
