package vscode

import (
	"os"
	"path/filepath"
)

// FileType mirrors the host editor's file kind flags.
type FileType int

const (
	FileTypeUnknown      FileType = 0
	FileTypeFile         FileType = 1
	FileTypeDirectory    FileType = 2
	FileTypeSymbolicLink FileType = 64
)

// FileStat describes a filesystem entry.
type FileStat struct {
	Type  FileType
	Mtime int64
	Size  int64
}

// DeleteOptions controls FileSystemAPI.Delete.
type DeleteOptions struct {
	Recursive bool
}

// FileSystemAPI delegates to the local filesystem, translating failures
// into the typed FileSystemError taxonomy.
type FileSystemAPI struct{}

// NewFileSystemAPI constructs a FileSystemAPI.
func NewFileSystemAPI() *FileSystemAPI {
	return &FileSystemAPI{}
}

// Stat returns metadata for uri.
func (f *FileSystemAPI) Stat(uri URI) (FileStat, error) {
	info, err := os.Lstat(uri.FSPath())
	if err != nil {
		return FileStat{}, WrapFSError(err, uri)
	}
	kind := FileTypeFile
	switch {
	case info.IsDir():
		kind = FileTypeDirectory
	case info.Mode()&os.ModeSymlink != 0:
		kind = FileTypeSymbolicLink
	case !info.Mode().IsRegular():
		kind = FileTypeUnknown
	}
	return FileStat{
		Type:  kind,
		Mtime: info.ModTime().UnixMilli(),
		Size:  info.Size(),
	}, nil
}

// ReadFile returns the full content of uri.
func (f *FileSystemAPI) ReadFile(uri URI) ([]byte, error) {
	data, err := os.ReadFile(uri.FSPath())
	if err != nil {
		return nil, WrapFSError(err, uri)
	}
	return data, nil
}

// WriteFile writes content to uri, creating parent directories implicitly.
// That leniency is deliberate; the real host requires the directory to
// exist.
func (f *FileSystemAPI) WriteFile(uri URI, content []byte) error {
	path := uri.FSPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WrapFSError(err, uri)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return WrapFSError(err, uri)
	}
	return nil
}

// Delete removes uri. Non-empty directories require Recursive.
func (f *FileSystemAPI) Delete(uri URI, opts DeleteOptions) error {
	path := uri.FSPath()
	var err error
	if opts.Recursive {
		// RemoveAll treats a missing path as success; surface FileNotFound
		// like the non-recursive path does.
		if _, statErr := os.Lstat(path); statErr != nil {
			return WrapFSError(statErr, uri)
		}
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return WrapFSError(err, uri)
	}
	return nil
}

// CreateDirectory creates the directory at uri, including parents.
func (f *FileSystemAPI) CreateDirectory(uri URI) error {
	if err := os.MkdirAll(uri.FSPath(), 0o755); err != nil {
		return WrapFSError(err, uri)
	}
	return nil
}

// Rename moves source to target, creating the target's parent if needed.
func (f *FileSystemAPI) Rename(source, target URI) error {
	if err := os.MkdirAll(filepath.Dir(target.FSPath()), 0o755); err != nil {
		return WrapFSError(err, target)
	}
	if err := os.Rename(source.FSPath(), target.FSPath()); err != nil {
		return WrapFSError(err, source)
	}
	return nil
}

// Copy duplicates a regular file from source to target.
func (f *FileSystemAPI) Copy(source, target URI) error {
	data, err := f.ReadFile(source)
	if err != nil {
		return err
	}
	return f.WriteFile(target, data)
}
