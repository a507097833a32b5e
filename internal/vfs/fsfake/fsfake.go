// Package fsfake provides an in-memory vfs.FS for tests. It is backed by an
// afero MemMapFs and lets tests inject the conditions that are hard to arrange
// on a real filesystem: canonicalization mismatches, permission denials,
// oversized files, special file modes and I/O failures.
package fsfake

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"gitlab.com/crawlkit/fileproto/internal/vfs"
)

type FS struct {
	Afero afero.Afero

	// CanonicalPaths maps a path to the canonical form reported for it.
	// Paths not present canonicalize to themselves.
	CanonicalPaths map[string]string

	// Unreadable marks paths for which Readable reports a permission error.
	Unreadable map[string]bool

	// SizeOverride and ModeOverride replace the size or mode reported by Stat
	// and ReadDir for the given path.
	SizeOverride map[string]int64
	ModeOverride map[string]os.FileMode

	// ReadErr and ListErr fail ReadFile or ReadDir for the given path.
	ReadErr map[string]error
	ListErr map[string]error
}

func New() *FS {
	return &FS{
		Afero:          afero.Afero{Fs: afero.NewMemMapFs()},
		CanonicalPaths: map[string]string{},
		Unreadable:     map[string]bool{},
		SizeOverride:   map[string]int64{},
		ModeOverride:   map[string]os.FileMode{},
		ReadErr:        map[string]error{},
		ListErr:        map[string]error{},
	}
}

var _ vfs.FS = &FS{}

func (f *FS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	fi, err := f.Afero.Stat(path)
	if err != nil {
		return nil, err
	}

	return f.override(path, fi), nil
}

func (f *FS) Readable(ctx context.Context, path string) error {
	if f.Unreadable[path] {
		return &os.PathError{Op: "access", Path: path, Err: os.ErrPermission}
	}

	return nil
}

func (f *FS) Canonical(ctx context.Context, path string) (string, error) {
	if canonical, ok := f.CanonicalPaths[path]; ok {
		return canonical, nil
	}

	return path, nil
}

func (f *FS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := f.ReadErr[path]; err != nil {
		return nil, err
	}

	return f.Afero.ReadFile(path)
}

func (f *FS) ReadDir(ctx context.Context, path string) ([]os.FileInfo, error) {
	if err := f.ListErr[path]; err != nil {
		return nil, err
	}

	fis, err := f.Afero.ReadDir(path)
	if err != nil {
		return nil, err
	}

	children := make([]os.FileInfo, 0, len(fis))
	for _, fi := range fis {
		children = append(children, f.override(filepath.Join(path, fi.Name()), fi))
	}

	return children, nil
}

func (f *FS) Name() string {
	return "fake"
}

func (f *FS) override(path string, fi os.FileInfo) os.FileInfo {
	size, sizeOverridden := f.SizeOverride[path]
	mode, modeOverridden := f.ModeOverride[path]
	if !sizeOverridden && !modeOverridden {
		return fi
	}

	out := &fileInfo{FileInfo: fi, size: fi.Size(), mode: fi.Mode()}
	if sizeOverridden {
		out.size = size
	}
	if modeOverridden {
		out.mode = mode
	}

	return out
}

type fileInfo struct {
	os.FileInfo
	size int64
	mode os.FileMode
}

func (fi *fileInfo) Size() int64       { return fi.size }
func (fi *fileInfo) Mode() os.FileMode { return fi.mode }
