package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// Stage names, in execution order.
const (
	StagePrepare  = "prepare"
	StageExtract  = "extract"
	StageFeatures = "features"
	StageMatch    = "match"
	StageMapper   = "mapper"
	StageExport   = "export"
)

// stageCount is the number of user-visible steps per video.
const stageCount = 5

// ErrNoFrames marks an extraction run that exited cleanly but produced no
// output images. Exit status alone is not trusted for that stage.
var ErrNoFrames = errors.New("extractor produced no frames")

// StageError reports which stage ended a video's pipeline.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("stage %s failed", e.Stage)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Status is the terminal state of one video's pipeline run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Job identifies one video within a batch. Created by the batch controller
// during enumeration; immutable.
type Job struct {
	Path  string
	Stem  string
	Index int
	Total int
}

// Outcome is the result of running one job's pipeline.
type Outcome struct {
	Video       string
	Stem        string
	Status      Status
	FailedStage string
	Err         error
	StartedAt   time.Time
	Duration    time.Duration
}
