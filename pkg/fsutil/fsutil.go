// Package fsutil reads source documents and writes rendered output safely.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Errors returned by ReadFile and the writers, matched with errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo describes a source file as it was when read.
type FileInfo struct {
	Path string

	// Mode carries the permission bits output files inherit.
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
}

// ReadFile returns the content of path with its metadata. The metadata comes
// from the open handle, so it describes the bytes actually read.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, "open", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, classify(path, "stat", err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, classify(path, "read", err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
	}, nil
}

// classify wraps err with the matching sentinel when there is one.
func classify(path, op string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, os.ErrNotExist):
		sentinel = ErrNotFound
	case errors.Is(err, os.ErrPermission):
		sentinel = ErrPermissionDenied
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	return fmt.Errorf("%w: %s: %w", sentinel, path, err)
}
