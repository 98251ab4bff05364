package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStages(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ScenesDir == "" {
		return errors.New("paths.scenes_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateStages() error {
	if c.Extract.QScale < 1 || c.Extract.QScale > 31 {
		return fmt.Errorf("extract.qscale must be between 1 and 31, got %d", c.Extract.QScale)
	}
	if c.Features.MaxImageSize < 1 {
		return fmt.Errorf("features.max_image_size must be positive, got %d", c.Features.MaxImageSize)
	}
	if c.Matching.Overlap < 1 {
		return fmt.Errorf("matching.overlap must be positive, got %d", c.Matching.Overlap)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
