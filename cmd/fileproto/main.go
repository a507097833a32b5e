package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"

	"gitlab.com/crawlkit/fileproto/internal/config"
	"gitlab.com/crawlkit/fileproto/internal/metadata"
	"gitlab.com/crawlkit/fileproto/internal/protocol"
	"gitlab.com/crawlkit/fileproto/internal/protocol/file"
	"gitlab.com/crawlkit/fileproto/internal/vfs"
	"gitlab.com/crawlkit/fileproto/internal/vfs/local"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

var (
	encodingName = flag.String("encoding", "UTF-8", "IANA name of the character encoding used to decode locator paths")
	crawlParent  = flag.Bool("crawl-parent", false, "Include the parent directory in directory listings")
	logFormat    = flag.String("log-format", "text", "The log output format: 'text' or 'json'")
	logVerbose   = flag.Bool("log-verbose", false, "Verbose logging")
	showVersion  = flag.Bool("version", false, "Show version")
)

func main() {
	// Optional .env, so locally stored settings reach the env-aware flags.
	_ = godotenv.Load()
	flag.Parse()

	configureLogging(*logFormat, *logVerbose)

	if *showVersion {
		fmt.Println(VERSION)
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: fileproto [options] locator...")
		os.Exit(2)
	}

	cfg := &config.Config{Encoding: *encodingName, CrawlParent: *crawlParent}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	resolver, err := file.NewResolver(vfs.Instrumented(local.New()), cfg)
	if err != nil {
		fatal(err)
	}

	for _, locator := range flag.Args() {
		if err := fetch(resolver, locator); err != nil {
			fatal(err)
		}
	}
}

// fetch resolves one locator and prints an HTTP-style dump of the response.
func fetch(resolver *file.Resolver, locator string) error {
	md := metadata.New()

	resp, err := resolver.Resolve(context.Background(), locator, md)
	if err != nil {
		return err
	}

	fmt.Printf("%d %s\n", resp.StatusCode, protocol.StatusText(resp.StatusCode))
	for _, key := range md.Keys() {
		fmt.Printf("%s: %s\n", key, md.Get(key))
	}
	fmt.Println()
	os.Stdout.Write(resp.Content)

	return nil
}

func configureLogging(format string, verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}

func fatal(err error) {
	log.WithError(err).Fatal()
}
