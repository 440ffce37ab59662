package vscode

import (
	"errors"
	"fmt"
	"io/fs"
)

// FileSystemErrorCode discriminates filesystem failures the way the host
// editor's API does.
type FileSystemErrorCode string

const (
	CodeFileNotFound      FileSystemErrorCode = "FileNotFound"
	CodeFileExists        FileSystemErrorCode = "FileExists"
	CodeFileNotADirectory FileSystemErrorCode = "FileNotADirectory"
	CodeFileIsADirectory  FileSystemErrorCode = "FileIsADirectory"
	CodeNoPermissions     FileSystemErrorCode = "NoPermissions"
	CodeUnavailable       FileSystemErrorCode = "Unavailable"
	CodeUnknown           FileSystemErrorCode = "Unknown"
)

// FileSystemError is the typed error the FileSystemAPI surfaces.
type FileSystemError struct {
	Code     FileSystemErrorCode
	Resource URI
	err      error
}

// Error implements the error interface.
func (e *FileSystemError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Resource.FSPath(), e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Resource.FSPath())
}

// Unwrap exposes the underlying cause.
func (e *FileSystemError) Unwrap() error { return e.err }

// NewFileSystemError constructs a typed error for a resource.
func NewFileSystemError(code FileSystemErrorCode, resource URI) *FileSystemError {
	return &FileSystemError{Code: code, Resource: resource}
}

// WrapFSError classifies an underlying filesystem error. Missing files map
// to FileNotFound, permission failures to NoPermissions, everything else to
// Unknown.
func WrapFSError(err error, resource URI) *FileSystemError {
	code := CodeUnknown
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = CodeFileNotFound
	case errors.Is(err, fs.ErrPermission):
		code = CodeNoPermissions
	case errors.Is(err, fs.ErrExist):
		code = CodeFileExists
	}
	return &FileSystemError{Code: code, Resource: resource, err: err}
}

// FSErrorCode extracts the discriminator from err, or Unknown for untyped
// errors.
func FSErrorCode(err error) FileSystemErrorCode {
	var fsErr *FileSystemError
	if errors.As(err, &fsErr) {
		return fsErr.Code
	}
	return CodeUnknown
}
