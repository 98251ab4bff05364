package batch_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"sceneforge/internal/batch"
	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/pipeline"
	"sceneforge/internal/stageexec"
	"sceneforge/internal/toolkit"
)

// scriptedRunner succeeds every stage, simulating tool output on disk,
// except stages matched by failWhen.
type scriptedRunner struct {
	calls    []stageexec.Invocation
	failWhen func(stageexec.Invocation) bool
}

func (r *scriptedRunner) Run(_ context.Context, inv stageexec.Invocation) stageexec.Result {
	r.calls = append(r.calls, inv)
	if r.failWhen != nil && r.failWhen(inv) {
		return stageexec.Result{Stage: inv.Stage, ExitCode: 1, Err: errors.New(inv.Stage + " exited with status 1")}
	}
	switch inv.Stage {
	case pipeline.StageExtract:
		imagesDir := filepath.Dir(inv.Args[len(inv.Args)-1])
		_ = os.WriteFile(filepath.Join(imagesDir, "frame_000001.jpg"), []byte("jpeg"), 0o644)
	case pipeline.StageMapper:
		for i, arg := range inv.Args {
			if arg == "--output_path" && i+1 < len(inv.Args) {
				_ = os.MkdirAll(filepath.Join(inv.Args[i+1], "0"), 0o755)
			}
		}
	}
	return stageexec.Result{Stage: inv.Stage}
}

type memoryRecorder struct {
	runIDs   []string
	outcomes []pipeline.Outcome
}

func (m *memoryRecorder) Record(_ context.Context, runID string, outcome pipeline.Outcome) error {
	m.runIDs = append(m.runIDs, runID)
	m.outcomes = append(m.outcomes, outcome)
	return nil
}

func newController(t *testing.T, scenesDir string, runner stageexec.CommandRunner, recorder batch.Recorder) *batch.Controller {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.ScenesDir = scenesDir
	cfg.Paths.LogDir = t.TempDir()
	tools := &toolkit.Toolset{
		FFmpeg: "/fake/ffmpeg",
		Colmap: "/fake/colmap",
		Mapper: "/fake/glomap",
		Engine: toolkit.EngineGlomap,
	}
	pipe := pipeline.New(&cfg, tools, runner, logging.NewNop())
	return batch.New(&cfg, pipe, recorder, logging.NewNop())
}

func videoList(stems ...string) []string {
	videos := make([]string, 0, len(stems))
	for _, stem := range stems {
		videos = append(videos, fmt.Sprintf("/videos/%s.mp4", stem))
	}
	return videos
}

func TestRunFailureIsolation(t *testing.T) {
	scenes := t.TempDir()
	runner := &scriptedRunner{
		failWhen: func(inv stageexec.Invocation) bool {
			return inv.Stage == pipeline.StageMatch && strings.Contains(strings.Join(inv.Args, " "), string(filepath.Separator)+"b"+string(filepath.Separator))
		},
	}
	controller := newController(t, scenes, runner, nil)

	summary, err := controller.Run(context.Background(), videoList("a", "b", "c"), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Total != 3 || summary.Completed != 2 || summary.Failed != 1 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.AllFailed() {
		t.Fatal("partial failure must not count as all failed")
	}

	if summary.Outcomes[1].Status != pipeline.StatusFailed || summary.Outcomes[1].FailedStage != pipeline.StageMatch {
		t.Fatalf("expected second job to fail at match: %+v", summary.Outcomes[1])
	}
	// Jobs after the failure proceed untouched.
	if summary.Outcomes[2].Status != pipeline.StatusCompleted {
		t.Fatalf("expected third job completed: %+v", summary.Outcomes[2])
	}
}

func TestRunIsIdempotentWithoutForce(t *testing.T) {
	scenes := t.TempDir()
	first := &scriptedRunner{}
	if _, err := newController(t, scenes, first, nil).Run(context.Background(), videoList("a", "b"), false); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if len(first.calls) == 0 {
		t.Fatal("expected first run to invoke stages")
	}

	second := &scriptedRunner{}
	summary, err := newController(t, scenes, second, nil).Run(context.Background(), videoList("a", "b"), false)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Skipped != 2 || summary.Completed != 0 {
		t.Fatalf("expected all skipped on second run: %+v", summary)
	}
	if len(second.calls) != 0 {
		t.Fatalf("second run must not invoke any stage, got %d calls", len(second.calls))
	}
}

func TestRunForceReprocessesCompletedScenes(t *testing.T) {
	scenes := t.TempDir()
	if _, err := newController(t, scenes, &scriptedRunner{}, nil).Run(context.Background(), videoList("a"), false); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	rerun := &scriptedRunner{}
	summary, err := newController(t, scenes, rerun, nil).Run(context.Background(), videoList("a"), true)
	if err != nil {
		t.Fatalf("forced Run: %v", err)
	}
	if summary.Completed != 1 || summary.Skipped != 0 {
		t.Fatalf("expected forced completion: %+v", summary)
	}
	if len(rerun.calls) == 0 {
		t.Fatal("forced run must invoke stages")
	}
}

func TestRunSameStemFromDifferentDirsSkipsSecond(t *testing.T) {
	scenes := t.TempDir()
	runner := &scriptedRunner{}
	controller := newController(t, scenes, runner, nil)

	summary, err := controller.Run(context.Background(), []string{"/camera1/a.mp4", "/camera2/a.mp4"}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Completed != 1 || summary.Skipped != 1 {
		t.Fatalf("expected same-stem collision to skip the second job: %+v", summary)
	}
}

func TestRunAllFailed(t *testing.T) {
	scenes := t.TempDir()
	runner := &scriptedRunner{
		failWhen: func(inv stageexec.Invocation) bool { return inv.Stage == pipeline.StageExtract },
	}
	summary, err := newController(t, scenes, runner, nil).Run(context.Background(), videoList("a", "b"), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.AllFailed() {
		t.Fatalf("expected all failed: %+v", summary)
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	if _, err := newController(t, t.TempDir(), &scriptedRunner{}, nil).Run(context.Background(), nil, false); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestRunRecordsOutcomesWithRunID(t *testing.T) {
	recorder := &memoryRecorder{}
	summary, err := newController(t, t.TempDir(), &scriptedRunner{}, recorder).Run(context.Background(), videoList("a", "b"), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(recorder.outcomes) != 2 {
		t.Fatalf("expected 2 recorded outcomes, got %d", len(recorder.outcomes))
	}
	for _, runID := range recorder.runIDs {
		if runID != summary.RunID {
			t.Fatalf("expected run id %s, got %s", summary.RunID, runID)
		}
	}
}

func TestRunRefusesLockedScenesDir(t *testing.T) {
	scenes := t.TempDir()
	lock := flock.New(filepath.Join(scenes, ".sceneforge.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock scenes dir: %v", err)
	}
	defer lock.Unlock()

	_, err = newController(t, scenes, &scriptedRunner{}, nil).Run(context.Background(), videoList("a"), false)
	if err == nil || !strings.Contains(err.Error(), "already processing") {
		t.Fatalf("expected lock contention error, got %v", err)
	}
}
