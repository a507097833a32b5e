// Package file implements the file protocol: it resolves a file locator
// naming a local filesystem entry into an HTTP-shaped protocol response.
//
// The outcome of a resolution is always encoded in the response status code.
// Only a locator the resolver cannot interpret at all, because its URL is
// malformed or its path does not decode under the configured character
// encoding, is returned as an error.
package file

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"

	"gitlab.com/crawlkit/fileproto/internal/config"
	"gitlab.com/crawlkit/fileproto/internal/metadata"
	"gitlab.com/crawlkit/fileproto/internal/protocol"
	"gitlab.com/crawlkit/fileproto/internal/vfs"
	"gitlab.com/crawlkit/fileproto/metrics"
)

// Resolver turns file locators into protocol responses. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	fs          vfs.FS
	enc         encoding.Encoding
	crawlParent bool
}

func NewResolver(fs vfs.FS, cfg *config.Config) (*Resolver, error) {
	enc, err := cfg.PathEncoding()
	if err != nil {
		return nil, err
	}

	return &Resolver{fs: fs, enc: enc, crawlParent: cfg.CrawlParent}, nil
}

// Resolve fetches the filesystem entry named by locator. The caller-owned
// metadata mapping md is mutated in place; the only keys Resolve may add are
// Content-Length, Last-Modified, Location, Content-Type and isSitemap.
func (r *Resolver) Resolve(ctx context.Context, locator string, md *metadata.M) (*protocol.Response, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("malformed locator %q: %w", locator, err)
	}

	if u.RawQuery != "" {
		log.WithField("url", locator).Warn("ignoring query string in file locator")
	}

	path, err := r.decodePath(u.EscapedPath())
	if err != nil {
		return nil, err
	}

	resp := &protocol.Response{Metadata: md}
	r.classify(ctx, path, resp)

	if resp.Content == nil {
		resp.Content = []byte{}
	}

	metrics.FileResponsesTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	return resp, nil
}

// decodePath turns the escaped URL path into a filesystem path: it reverses
// the percent-escaping to raw bytes, then decodes those bytes with the
// configured character encoding.
func (r *Resolver) decodePath(escapedPath string) (string, error) {
	if escapedPath == "" {
		escapedPath = "/"
	}

	raw, err := url.PathUnescape(escapedPath)
	if err != nil {
		return "", fmt.Errorf("undecodable locator path %q: %w", escapedPath, err)
	}

	path, err := r.enc.NewDecoder().String(raw)
	if err != nil {
		return "", fmt.Errorf("locator path %q does not decode under the configured encoding: %w", escapedPath, err)
	}

	// A trailing separator is not part of the entry name and would make every
	// directory look non-canonical.
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	return path, nil
}

// classify determines which of the mutually exclusive target classes the path
// falls into and fills in the corresponding response.
func (r *Resolver) classify(ctx context.Context, path string, resp *protocol.Response) {
	fi, err := r.fs.Stat(ctx, path)
	if err != nil {
		resp.StatusCode = http.StatusNotFound
		return
	}

	if err := r.fs.Readable(ctx, path); err != nil {
		log.WithError(err).WithField("path", path).Debug("path exists but is not readable")
		resp.StatusCode = http.StatusUnauthorized
		return
	}

	canonical, err := r.fs.Canonical(ctx, path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("could not canonicalize path")
		resp.StatusCode = http.StatusInternalServerError
		return
	}

	// A path that differs from its canonical form (symlinks, dot segments,
	// case differences) redirects to the canonical one.
	if canonical != path {
		resp.Metadata.Set(protocol.HeaderLocation, fileLocator(canonical))
		resp.StatusCode = http.StatusMultipleChoices
		return
	}

	switch {
	case fi.IsDir():
		r.resolveDir(ctx, path, fi, resp)
	case fi.Mode().IsRegular():
		r.resolveFile(ctx, path, fi, resp)
	default:
		log.WithFields(log.Fields{"path": path, "mode": fi.Mode()}).Warn("path is neither a regular file nor a directory")
		resp.StatusCode = http.StatusInternalServerError
	}
}

// resolveFile materializes a regular file. The payload length is bounded by a
// signed 32-bit integer; larger files are rejected without reading.
func (r *Resolver) resolveFile(ctx context.Context, path string, fi os.FileInfo, resp *protocol.Response) {
	size := fi.Size()

	if size > math.MaxInt32 {
		log.WithFields(log.Fields{"path": path, "size": size}).Warn("file too large to materialize")
		resp.StatusCode = http.StatusBadRequest
		return
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err == nil && int64(len(data)) != size {
		err = fmt.Errorf("read %d bytes, expected %d", len(data), size)
	}
	if err != nil {
		log.WithError(err).WithField("path", path).Error("could not read file")
		resp.StatusCode = protocol.StatusMethodFailure
		return
	}

	metrics.FileSize.Observe(float64(size))

	resp.Content = data
	resp.Metadata.Set(protocol.HeaderContentLength, strconv.FormatInt(size, 10))
	resp.Metadata.Set(protocol.HeaderLastModified, formatTime(fi.ModTime()))
	resp.StatusCode = http.StatusOK
}

// resolveDir represents a directory as a synthetic sitemap document.
func (r *Resolver) resolveDir(ctx context.Context, path string, fi os.FileInfo, resp *protocol.Response) {
	sitemap, err := r.generateSitemap(ctx, path, fi)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("could not list directory")
		resp.StatusCode = protocol.StatusMethodFailure
		return
	}

	resp.Content = sitemap
	resp.Metadata.Set(protocol.HeaderContentType, "application/xml")
	resp.Metadata.Set(protocol.HeaderIsSitemap, "true")
	resp.StatusCode = http.StatusOK
}

// fileLocator renders an absolute filesystem path as a file URL.
func fileLocator(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}
