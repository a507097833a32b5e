// Package protocol defines the transport-independent response descriptor
// produced by the protocol implementations. Status codes reuse HTTP numbering
// as an outcome enumeration, they never indicate a real network exchange.
package protocol

import (
	"net/http"

	"gitlab.com/crawlkit/fileproto/internal/metadata"
)

// StatusMethodFailure signals an I/O failure while materializing an existing,
// readable resource. There is no net/http constant for 420.
const StatusMethodFailure = 420

// Header keys the file protocol may add to response metadata.
const (
	HeaderContentLength = "Content-Length"
	HeaderContentType   = "Content-Type"
	HeaderLastModified  = "Last-Modified"
	HeaderLocation      = "Location"

	// HeaderIsSitemap marks a synthetic directory listing so downstream
	// consumers can tell it apart from a real sitemap fetched from disk.
	HeaderIsSitemap = "isSitemap"
)

// Response is the outcome of resolving one locator: a fully materialized
// payload, a status code and the caller's metadata mapping. Content is never
// nil, a bodiless outcome carries an empty slice.
type Response struct {
	Content    []byte
	StatusCode int
	Metadata   *metadata.M
}

// StatusText returns a text for the status code, covering the non-standard
// codes this package produces.
func StatusText(code int) string {
	if code == StatusMethodFailure {
		return "Method Failure"
	}

	return http.StatusText(code)
}
