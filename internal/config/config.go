package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ScenesDir  string `toml:"scenes_dir"`
	InstallDir string `toml:"install_dir"`
	LogDir     string `toml:"log_dir"`
}

// Tools contains explicit executable path overrides. Empty values fall back
// to the install directory and then the process PATH.
type Tools struct {
	FFmpegPath string `toml:"ffmpeg_path"`
	ColmapPath string `toml:"colmap_path"`
	GlomapPath string `toml:"glomap_path"`
}

// Extract contains frame-extraction settings.
type Extract struct {
	// QScale is ffmpeg's JPEG quality scale (1 best, 31 worst).
	QScale int `toml:"qscale"`
}

// Features contains feature-extraction settings passed to the feature tool.
type Features struct {
	SingleCamera bool `toml:"single_camera"`
	UseGPU       bool `toml:"use_gpu"`
	MaxImageSize int  `toml:"max_image_size"`
}

// Matching contains sequential-matching settings.
type Matching struct {
	// Overlap bounds how many neighbouring frames each frame is compared
	// against. A fixed constant, never derived from the input video.
	Overlap int `toml:"overlap"`
}

// Mapper contains sparse-reconstruction settings.
type Mapper struct {
	// Threads applies to the colmap engine only; 0 means the CPU count.
	Threads int `toml:"threads"`
}

// History contains configuration for the run-history store.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <log_dir>/history.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for SceneForge.
//
// Configuration sections by subsystem:
//   - Paths: scenes root, tool install directory, log directory
//   - Tools: explicit executable overrides
//   - Extract/Features/Matching/Mapper: per-stage tool parameters
//   - History: SQLite run log
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Tools    Tools    `toml:"tools"`
	Extract  Extract  `toml:"extract"`
	Features Features `toml:"features"`
	Matching Matching `toml:"matching"`
	Mapper   Mapper   `toml:"mapper"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/sceneforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sceneforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the batch needs before running.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ScenesDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the resolved run-history database path.
func (c *Config) HistoryPath() string {
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// CreateSample writes the embedded sample configuration to the given path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading tilde and resolves the result to an absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
