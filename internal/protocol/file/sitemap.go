package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"gitlab.com/crawlkit/fileproto/metrics"
)

const (
	sitemapHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n"
	sitemapFooter = "</urlset>"
)

// generateSitemap renders the directory's immediate children as a sitemap
// document: one entry for the directory itself, one per child in enumeration
// order, and optionally one for the parent directory. Entry locators use the
// legacy "file:\" shape with a backslash after the scheme; existing consumers
// of the format depend on those exact bytes.
func (r *Resolver) generateSitemap(ctx context.Context, dir string, fi os.FileInfo) ([]byte, error) {
	children, err := r.fs.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(sitemapHeader)

	writeSitemapEntry(&sb, dir+`\`, fi.ModTime())
	for _, child := range children {
		writeSitemapEntry(&sb, filepath.Join(dir, child.Name()), child.ModTime())
	}

	entries := len(children) + 1

	if r.crawlParent {
		parent := filepath.Dir(dir)
		switch pfi, err := r.statParent(ctx, dir, parent); {
		case pfi != nil:
			writeSitemapEntry(&sb, parent+`\`, pfi.ModTime())
			entries++
		case err != nil:
			log.WithError(err).WithField("path", parent).Warn("omitting parent entry from directory listing")
		}
	}

	sb.WriteString(sitemapFooter)

	metrics.SitemapEntries.Observe(float64(entries))

	return []byte(sb.String()), nil
}

// statParent describes dir's parent, or returns (nil, nil) when dir is a
// filesystem root and has none.
func (r *Resolver) statParent(ctx context.Context, dir, parent string) (os.FileInfo, error) {
	if parent == dir {
		return nil, nil
	}

	return r.fs.Stat(ctx, parent)
}

func writeSitemapEntry(sb *strings.Builder, path string, modTime time.Time) {
	sb.WriteString("<url>\n  <loc>file:\\")
	sb.WriteString(path)
	sb.WriteString("</loc>\n  <lastmod>")
	sb.WriteString(formatTime(modTime))
	sb.WriteString("</lastmod>\n</url>\n")
}
