package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Entry is one recorded video outcome.
type Entry struct {
	ID           int64
	RunID        string
	Video        string
	Stem         string
	Status       string
	FailedStage  string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration is the wall-clock time the video's pipeline took.
func (e Entry) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry        Entry
		failedStage  sql.NullString
		errorMessage sql.NullString
		startedAt    string
		finishedAt   string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.Video,
		&entry.Stem,
		&entry.Status,
		&failedStage,
		&errorMessage,
		&startedAt,
		&finishedAt,
	); err != nil {
		return nil, fmt.Errorf("scan run entry: %w", err)
	}
	entry.FailedStage = failedStage.String
	entry.ErrorMessage = errorMessage.String

	var err error
	if entry.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if entry.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &entry, nil
}
