package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// framePattern is the printf-style name ffmpeg expands for extracted frames.
const framePattern = "frame_%06d.jpg"

// Layout describes the directory structure for one video's scene. Images
// and sparse are always subdirectories of the root; the database sits next
// to them. Derived purely from the scenes root and the video stem.
type Layout struct {
	Root         string
	ImagesDir    string
	SparseDir    string
	DatabasePath string
}

// Stem returns the scene key for a video path: the base name without its
// extension. Two videos with the same stem map to the same scene regardless
// of their source directories. Dotfile names like ".mp4" keep the full base
// name so the stem is never empty and the scene never collapses onto the
// scenes root.
func Stem(videoPath string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// LayoutFor computes the layout for a video stem under the scenes root.
func LayoutFor(scenesRoot, stem string) Layout {
	root := filepath.Join(scenesRoot, stem)
	return Layout{
		Root:         root,
		ImagesDir:    filepath.Join(root, "images"),
		SparseDir:    filepath.Join(root, "sparse"),
		DatabasePath: filepath.Join(root, "database.db"),
	}
}

// Exists reports whether the scene root exists. This is the skip check:
// any existing root, complete or not, counts as already processed.
func (l Layout) Exists() bool {
	info, err := os.Stat(l.Root)
	return err == nil && info.IsDir()
}

// Materialize creates the images and sparse directories. It tolerates a
// pre-existing tree so forced re-processing can rebuild in place.
func (l Layout) Materialize() error {
	for _, dir := range []string{l.ImagesDir, l.SparseDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scene directory %q: %w", dir, err)
		}
	}
	return nil
}

// Clear removes the whole scene tree. Used before a forced re-run so stale
// artifacts from an earlier attempt cannot leak into the new one.
func (l Layout) Clear() error {
	if err := os.RemoveAll(l.Root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear scene directory %q: %w", l.Root, err)
	}
	return nil
}

// FramePattern returns the output pattern handed to the frame extractor.
func (l Layout) FramePattern() string {
	return filepath.Join(l.ImagesDir, framePattern)
}

// FrameCount counts extracted frames in the images directory. The
// extraction stage is verified with this rather than trusting the tool's
// exit status alone.
func (l Layout) FrameCount() (int, error) {
	entries, err := os.ReadDir(l.ImagesDir)
	if err != nil {
		return 0, fmt.Errorf("read images directory: %w", err)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".jpg") {
			count++
		}
	}
	return count, nil
}

// ModelDir returns the primary reconstructed model directory the mapper
// conventionally writes under sparse.
func (l Layout) ModelDir() string {
	return filepath.Join(l.SparseDir, "0")
}

// HasModel reports whether the primary model directory exists.
func (l Layout) HasModel() bool {
	info, err := os.Stat(l.ModelDir())
	return err == nil && info.IsDir()
}
