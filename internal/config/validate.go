package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var validate = validator.New()

// Validate checks the struct constraints and that the configured character
// encoding resolves to a usable decoder.
func (config *Config) Validate() error {
	var result *multierror.Error

	if err := validate.Struct(config); err != nil {
		result = multierror.Append(result, err)
	}

	if config.Encoding != "" {
		if _, err := config.PathEncoding(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
