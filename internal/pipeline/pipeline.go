package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
	"sceneforge/internal/stageexec"
	"sceneforge/internal/toolkit"
)

// Pipeline runs the stage sequence for individual videos. One Pipeline
// serves the whole batch; per-video state lives in the Process call.
type Pipeline struct {
	cfg    *config.Config
	tools  *toolkit.Toolset
	runner stageexec.CommandRunner
	logger *slog.Logger
}

// New constructs a pipeline. A nil runner gets the process-backed default.
func New(cfg *config.Config, tools *toolkit.Toolset, runner stageexec.CommandRunner, logger *slog.Logger) *Pipeline {
	if runner == nil {
		runner = stageexec.NewProcessRunner()
	}
	return &Pipeline{
		cfg:    cfg,
		tools:  tools,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process runs all stages for one job. Every terminal state is returned as
// an Outcome value; errors never escape to the caller, so one video cannot
// abort the batch.
func (p *Pipeline) Process(ctx context.Context, job Job, force bool) Outcome {
	started := time.Now()
	ctx = logging.WithVideo(ctx, job.Stem)
	log := logging.WithContext(ctx, p.logger)

	outcome := Outcome{
		Video:     job.Path,
		Stem:      job.Stem,
		StartedAt: started,
	}
	fail := func(stage string, err error) Outcome {
		outcome.Status = StatusFailed
		outcome.FailedStage = stage
		outcome.Err = &StageError{Stage: stage, Err: err}
		outcome.Duration = time.Since(started)
		log.Error("video failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.String(logging.FieldStage, stage),
			logging.Error(err),
		)
		return outcome
	}

	log.Info(fmt.Sprintf("processing video %d/%d", job.Index, job.Total),
		logging.String("source", job.Path),
	)

	layout := scene.LayoutFor(p.cfg.Paths.ScenesDir, job.Stem)
	if layout.Exists() {
		if !force {
			log.Info("scene directory exists, skipping",
				logging.String("scene", layout.Root),
			)
			outcome.Status = StatusSkipped
			outcome.Duration = time.Since(started)
			return outcome
		}
		log.Info("clearing existing scene for forced re-run",
			logging.String("scene", layout.Root),
		)
		if err := layout.Clear(); err != nil {
			return fail(StagePrepare, err)
		}
	}

	if err := layout.Materialize(); err != nil {
		return fail(StagePrepare, err)
	}

	if result := p.runStage(ctx, 1, "extracting frames", p.extractInvocation(layout, job.Path)); !result.Success() {
		return fail(StageExtract, result.Err)
	}
	frames, err := layout.FrameCount()
	if err != nil {
		return fail(StageExtract, err)
	}
	if frames == 0 {
		return fail(StageExtract, ErrNoFrames)
	}
	log.Debug("frames extracted", logging.Int("frames", frames))

	if result := p.runStage(ctx, 2, "extracting features", p.featuresInvocation(layout)); !result.Success() {
		return fail(StageFeatures, result.Err)
	}

	if result := p.runStage(ctx, 3, "matching features", p.matchInvocation(layout)); !result.Success() {
		return fail(StageMatch, result.Err)
	}

	if result := p.runStage(ctx, 4, "sparse reconstruction", p.mapperInvocation(layout)); !result.Success() {
		return fail(StageMapper, result.Err)
	}

	p.export(ctx, layout)

	outcome.Status = StatusCompleted
	outcome.Duration = time.Since(started)
	log.Info("video completed",
		logging.String(logging.FieldEventType, "video_complete"),
		logging.Duration("elapsed", outcome.Duration),
	)
	return outcome
}

func (p *Pipeline) runStage(ctx context.Context, step int, description string, inv stageexec.Invocation) stageexec.Result {
	stageCtx := logging.WithStage(ctx, inv.Stage)
	log := logging.WithContext(stageCtx, p.logger)
	log.Info(fmt.Sprintf("[%d/%d] %s", step, stageCount, description),
		logging.String(logging.FieldEventType, "stage_start"),
	)
	return p.runner.Run(stageCtx, inv)
}

// export converts the reconstructed model to TXT, best-effort. A missing
// model directory skips export silently; conversion failures are logged
// and swallowed, never failing the video.
func (p *Pipeline) export(ctx context.Context, layout scene.Layout) {
	stageCtx := logging.WithStage(ctx, StageExport)
	log := logging.WithContext(stageCtx, p.logger)

	if !layout.HasModel() {
		log.Debug("no primary model directory, skipping export",
			logging.String("model_dir", layout.ModelDir()),
		)
		return
	}

	log.Info(fmt.Sprintf("[%d/%d] exporting model to TXT", stageCount, stageCount),
		logging.String(logging.FieldEventType, "stage_start"),
	)
	for _, inv := range p.exportInvocations(layout) {
		if result := p.runner.Run(stageCtx, inv); !result.Success() {
			log.Debug("model export failed", logging.Error(result.Err))
		}
	}
}
