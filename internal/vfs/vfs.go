// Package vfs abstracts the filesystem capabilities the file protocol needs
// to classify and materialize a local path.
package vfs

import (
	"context"
	"os"
	"strconv"

	"gitlab.com/crawlkit/fileproto/metrics"
)

// FS is the capability set the file protocol resolves locators against.
// Implementations must be safe for concurrent use.
type FS interface {
	// Stat describes the entry at path, following symlinks.
	Stat(ctx context.Context, path string) (os.FileInfo, error)

	// Readable returns nil when the current process may read the entry at
	// path, and an error describing the denial otherwise.
	Readable(ctx context.Context, path string) error

	// Canonical returns the canonical form of path: absolute, with symlinks
	// and relative segments resolved.
	Canonical(ctx context.Context, path string) (string, error)

	// ReadFile reads the whole regular file at path into memory.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadDir lists the immediate children of the directory at path in
	// enumeration order.
	ReadDir(ctx context.Context, path string) ([]os.FileInfo, error)

	// Name identifies the implementation, e.g. in logs and metrics.
	Name() string
}

func Instrumented(fs FS) FS {
	return &instrumentedFS{fs: fs}
}

type instrumentedFS struct {
	fs FS
}

func (i *instrumentedFS) increment(operation string, err error) {
	metrics.VFSOperations.WithLabelValues(i.fs.Name(), operation, strconv.FormatBool(err == nil)).Inc()
}

func (i *instrumentedFS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	fi, err := i.fs.Stat(ctx, path)
	i.increment("Stat", err)
	return fi, err
}

func (i *instrumentedFS) Readable(ctx context.Context, path string) error {
	err := i.fs.Readable(ctx, path)
	i.increment("Readable", err)
	return err
}

func (i *instrumentedFS) Canonical(ctx context.Context, path string) (string, error) {
	canonical, err := i.fs.Canonical(ctx, path)
	i.increment("Canonical", err)
	return canonical, err
}

func (i *instrumentedFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := i.fs.ReadFile(ctx, path)
	i.increment("ReadFile", err)
	return data, err
}

func (i *instrumentedFS) ReadDir(ctx context.Context, path string) ([]os.FileInfo, error) {
	fis, err := i.fs.ReadDir(ctx, path)
	i.increment("ReadDir", err)
	return fis, err
}

func (i *instrumentedFS) Name() string {
	return i.fs.Name()
}
