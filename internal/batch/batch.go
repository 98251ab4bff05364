package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/pipeline"
	"sceneforge/internal/scene"
)

// lockFileName sits inside the scenes root and guards it against
// concurrent batch invocations.
const lockFileName = ".sceneforge.lock"

// Recorder persists per-video outcomes. The history store satisfies this;
// a nil recorder disables persistence.
type Recorder interface {
	Record(ctx context.Context, runID string, outcome pipeline.Outcome) error
}

// Controller owns job enumeration and outcome aggregation for one batch.
type Controller struct {
	cfg      *config.Config
	pipe     *pipeline.Pipeline
	recorder Recorder
	logger   *slog.Logger
}

// New constructs a batch controller.
func New(cfg *config.Config, pipe *pipeline.Pipeline, recorder Recorder, logger *slog.Logger) *Controller {
	return &Controller{
		cfg:      cfg,
		pipe:     pipe,
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "batch"),
	}
}

// Run processes every video in enumeration order. Per-video failures are
// folded into the summary; the returned error is reserved for conditions
// that prevent the batch from running at all.
func (c *Controller) Run(ctx context.Context, videos []string, force bool) (Summary, error) {
	summary := Summary{}
	if len(videos) == 0 {
		return summary, errors.New("no input videos")
	}

	if err := c.cfg.EnsureDirectories(); err != nil {
		return summary, err
	}

	lock := flock.New(filepath.Join(c.cfg.Paths.ScenesDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire scenes lock: %w", err)
	}
	if !acquired {
		return summary, fmt.Errorf("another run is already processing %s", c.cfg.Paths.ScenesDir)
	}
	defer func() { _ = lock.Unlock() }()

	summary.RunID = uuid.NewString()
	log := c.logger.With(logging.Args(logging.String(logging.FieldRunID, summary.RunID))...)
	log.Info("batch started",
		logging.Int("videos", len(videos)),
		logging.String("scenes_dir", c.cfg.Paths.ScenesDir),
		logging.Bool("force", force),
	)

	total := len(videos)
	for i, video := range videos {
		if ctx.Err() != nil {
			log.Warn("batch interrupted", logging.Int("remaining", total-i))
			break
		}

		job := pipeline.Job{
			Path:  video,
			Stem:  scene.Stem(video),
			Index: i + 1,
			Total: total,
		}
		outcome := c.pipe.Process(ctx, job, force)
		summary.add(outcome)
		c.record(ctx, summary.RunID, outcome, log)
	}

	log.Info("batch finished",
		logging.Int("completed", summary.Completed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (c *Controller) record(ctx context.Context, runID string, outcome pipeline.Outcome, log *slog.Logger) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, runID, outcome); err != nil {
		log.Warn("failed to record outcome", logging.Error(err))
	}
}
