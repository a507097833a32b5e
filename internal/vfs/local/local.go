// Package local implements vfs.FS on top of the host filesystem.
package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"gitlab.com/crawlkit/fileproto/internal/vfs"
)

type localFS struct {
	fs afero.Afero
}

func New() vfs.FS {
	return &localFS{fs: afero.Afero{Fs: afero.NewOsFs()}}
}

func (l *localFS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	return l.fs.Stat(path)
}

// Readable asks the kernel whether the real uid/gid of the process may read
// the entry, matching what a subsequent open would be allowed to do.
func (l *localFS) Readable(ctx context.Context, path string) error {
	if err := unix.Access(path, unix.R_OK); err != nil {
		return &os.PathError{Op: "access", Path: path, Err: err}
	}

	return nil
}

func (l *localFS) Canonical(ctx context.Context, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(absPath)
}

func (l *localFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return l.fs.ReadFile(path)
}

func (l *localFS) ReadDir(ctx context.Context, path string) ([]os.FileInfo, error) {
	return l.fs.ReadDir(path)
}

func (l *localFS) Name() string {
	return "local"
}
