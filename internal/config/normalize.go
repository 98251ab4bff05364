package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeStages()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScenesDir) == "" {
		c.Paths.ScenesDir = defaultScenesDir
	}
	if c.Paths.ScenesDir, err = ExpandPath(c.Paths.ScenesDir); err != nil {
		return fmt.Errorf("paths.scenes_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.InstallDir) == "" {
		c.Paths.InstallDir = defaultInstallDir
	}
	if c.Paths.InstallDir, err = ExpandPath(c.Paths.InstallDir); err != nil {
		return fmt.Errorf("paths.install_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() error {
	var err error
	if c.Tools.FFmpegPath = strings.TrimSpace(c.Tools.FFmpegPath); c.Tools.FFmpegPath != "" {
		if c.Tools.FFmpegPath, err = ExpandPath(c.Tools.FFmpegPath); err != nil {
			return fmt.Errorf("tools.ffmpeg_path: %w", err)
		}
	}
	if c.Tools.ColmapPath = strings.TrimSpace(c.Tools.ColmapPath); c.Tools.ColmapPath != "" {
		if c.Tools.ColmapPath, err = ExpandPath(c.Tools.ColmapPath); err != nil {
			return fmt.Errorf("tools.colmap_path: %w", err)
		}
	}
	if c.Tools.GlomapPath = strings.TrimSpace(c.Tools.GlomapPath); c.Tools.GlomapPath != "" {
		if c.Tools.GlomapPath, err = ExpandPath(c.Tools.GlomapPath); err != nil {
			return fmt.Errorf("tools.glomap_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeStages() {
	if c.Extract.QScale == 0 {
		c.Extract.QScale = defaultQScale
	}
	if c.Features.MaxImageSize == 0 {
		c.Features.MaxImageSize = defaultMaxImageSize
	}
	if c.Matching.Overlap == 0 {
		c.Matching.Overlap = defaultMatchingOverlap
	}
	if c.Mapper.Threads < 0 {
		c.Mapper.Threads = 0
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if c.History.Path = strings.TrimSpace(c.History.Path); c.History.Path != "" {
		if c.History.Path, err = ExpandPath(c.History.Path); err != nil {
			return fmt.Errorf("history.path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
