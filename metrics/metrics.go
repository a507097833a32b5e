package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FileResponsesTotal counts resolved file locators by status code
	FileResponsesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fileproto_responses_total",
		Help: "The total number of file locators resolved, by status code",
	}, []string{"status"})

	// FileSize tracks the size of files fetched into memory
	FileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fileproto_file_size_bytes",
		Help:    "Size of fetched regular files in bytes",
		Buckets: prometheus.ExponentialBuckets(256, 4, 12),
	})

	// SitemapEntries tracks the number of entries in generated directory listings
	SitemapEntries = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fileproto_sitemap_entries",
		Help:    "Number of url entries in generated directory sitemaps",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// VFSOperations counts filesystem operations by implementation and outcome
	VFSOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fileproto_vfs_operations_total",
		Help: "The number of VFS operations",
	}, []string{"vfs_name", "operation", "success"})
)

func init() {
	prometheus.MustRegister(FileResponsesTotal)
	prometheus.MustRegister(FileSize)
	prometheus.MustRegister(SitemapEntries)
	prometheus.MustRegister(VFSOperations)
}
