package config

import (
	"fmt"
	"os"
	"strings"
)

// validOutputs lists the accepted values of the output key.
var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ScratchDir == "" {
		return fmt.Errorf("scratch_dir is required")
	}

	valid := false
	for _, o := range validOutputs {
		if c.OutputFormat == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format %q (expected %s)", c.OutputFormat, strings.Join(validOutputs, "|"))
	}

	for category, constructs := range c.ProhibitedConstructs {
		for i, construct := range constructs {
			if construct.Pattern == "" {
				return fmt.Errorf("prohibited_constructs.%s[%d]: pattern is required", category, i)
			}
		}
	}
	return nil
}

// ValidateIncludeDirs checks that every configured include directory exists.
// Missing directories are not fatal to a lint run, so callers decide whether
// to warn or fail.
func (c *Config) ValidateIncludeDirs() []error {
	var errs []error
	for _, dir := range c.IncludeDirs {
		info, err := os.Stat(dir)
		if err != nil {
			errs = append(errs, fmt.Errorf("include directory does not exist: %s", dir))
			continue
		}
		if !info.IsDir() {
			errs = append(errs, fmt.Errorf("include path is not a directory: %s", dir))
		}
	}
	return errs
}
