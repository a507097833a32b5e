// Package config holds the settings of the file protocol.
package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Config stores the options of the file protocol. Encoding names the IANA
// character set used to decode percent-escaped locator paths. CrawlParent
// controls whether directory listings include an entry for the parent
// directory.
type Config struct {
	Encoding    string `default:"UTF-8" validate:"required"`
	CrawlParent bool   `default:"false"`
}

// New returns a validated Config with default settings applied.
func New() (*Config, error) {
	config := &Config{}
	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// PathEncoding resolves the configured character set name against the IANA
// registry.
func (config *Config) PathEncoding() (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(config.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown character encoding %q: %w", config.Encoding, err)
	}
	if enc == nil {
		// The IANA index knows some names it has no decoder for.
		return nil, fmt.Errorf("character encoding %q has no decoder", config.Encoding)
	}

	return enc, nil
}
