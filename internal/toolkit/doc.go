// Package toolkit resolves the external executables SceneForge drives:
// the frame extractor (ffmpeg), the feature/matching tool (colmap), and the
// sparse-reconstruction mapper (colmap or glomap).
//
// Resolution happens once per run, before any video is processed. Each tool
// is looked up through an explicit config override, then the install
// directory (both <dir>/<tool> and <dir>/<tool>/bin), then the process
// PATH. The result is a Toolset of absolute paths plus the directories to
// prepend to PATH for subprocesses, threaded explicitly into the stage
// runner so tests can inject fakes.
package toolkit
