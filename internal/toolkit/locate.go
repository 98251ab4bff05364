package toolkit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"sceneforge/internal/config"
)

// Engine selects which reconstruction tool performs the mapping stage.
type Engine string

const (
	// EngineColmap uses colmap's incremental mapper.
	EngineColmap Engine = "colmap"
	// EngineGlomap uses glomap's global mapper. Feature extraction,
	// matching, and model export still go through colmap.
	EngineGlomap Engine = "glomap"
)

// ParseEngine validates a user-supplied engine name.
func ParseEngine(value string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(EngineGlomap):
		return EngineGlomap, nil
	case string(EngineColmap):
		return EngineColmap, nil
	default:
		return "", fmt.Errorf("unknown engine %q (expected colmap or glomap)", value)
	}
}

// Toolset holds the resolved executable paths for one batch run.
type Toolset struct {
	FFmpeg string
	Colmap string
	// Mapper is the executable invoked for the mapping stage: the colmap
	// binary for EngineColmap, the glomap binary for EngineGlomap.
	Mapper string
	Engine Engine

	searchDirs []string
}

// NotFoundError reports a tool that could not be resolved anywhere.
type NotFoundError struct {
	Tool     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("tool %q not found in PATH", e.Tool)
	}
	return fmt.Sprintf("tool %q not found in PATH or under %s", e.Tool, strings.Join(e.Searched, ", "))
}

// Resolve locates every executable the selected engine needs. Any missing
// tool fails the whole batch before processing starts.
func Resolve(cfg *config.Config, engine Engine) (*Toolset, error) {
	ts := &Toolset{Engine: engine}

	ffmpeg, err := resolveTool("ffmpeg", cfg.Tools.FFmpegPath, cfg.Paths.InstallDir)
	if err != nil {
		return nil, err
	}
	ts.FFmpeg = ffmpeg

	colmap, err := resolveTool("colmap", cfg.Tools.ColmapPath, cfg.Paths.InstallDir)
	if err != nil {
		return nil, err
	}
	ts.Colmap = colmap

	switch engine {
	case EngineGlomap:
		glomap, err := resolveTool("glomap", cfg.Tools.GlomapPath, cfg.Paths.InstallDir)
		if err != nil {
			return nil, err
		}
		ts.Mapper = glomap
	default:
		ts.Mapper = colmap
	}

	ts.searchDirs = collectSearchDirs(ts.FFmpeg, ts.Colmap, ts.Mapper)
	return ts, nil
}

// Environ returns the process environment with the resolved tool
// directories (and their bin subdirectories) prepended to PATH, so each
// tool's own dependent binaries stay discoverable from subprocesses.
func (t *Toolset) Environ() []string {
	env := os.Environ()
	if len(t.searchDirs) == 0 {
		return env
	}
	prefix := strings.Join(t.searchDirs, string(os.PathListSeparator))
	for i, entry := range env {
		if strings.HasPrefix(entry, "PATH=") {
			env[i] = "PATH=" + prefix + string(os.PathListSeparator) + entry[len("PATH="):]
			return env
		}
	}
	return append(env, "PATH="+prefix)
}

func resolveTool(name, override, installDir string) (string, error) {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("configured path for %s does not exist: %s", name, override)
		}
		return override, nil
	}

	searched := make([]string, 0, 2)
	if installDir != "" {
		toolDir := filepath.Join(installDir, name)
		searched = append(searched, toolDir)
		if path, ok := findExecutable(toolDir, name); ok {
			return path, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return path, nil
		}
		return abs, nil
	}

	return "", &NotFoundError{Tool: name, Searched: searched}
}

// findExecutable checks dir and dir/bin for an executable with the given name.
func findExecutable(dir, name string) (string, bool) {
	exe := executableName(name)
	for _, candidate := range []string{filepath.Join(dir, exe), filepath.Join(dir, "bin", exe)} {
		info, err := os.Stat(candidate)
		if err == nil && isExecutable(info) {
			return candidate, true
		}
	}
	return "", false
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func collectSearchDirs(paths ...string) []string {
	seen := make(map[string]struct{}, len(paths)*2)
	dirs := make([]string, 0, len(paths)*2)
	for _, path := range paths {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		for _, candidate := range []string{dir, filepath.Join(dir, "bin")} {
			if _, ok := seen[candidate]; ok {
				continue
			}
			if info, err := os.Stat(candidate); err != nil || !info.IsDir() {
				continue
			}
			seen[candidate] = struct{}{}
			dirs = append(dirs, candidate)
		}
	}
	return dirs
}
