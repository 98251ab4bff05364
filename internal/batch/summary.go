package batch

import "sceneforge/internal/pipeline"

// Summary aggregates the outcomes of one batch run.
type Summary struct {
	RunID     string
	Total     int
	Completed int
	Skipped   int
	Failed    int
	Outcomes  []pipeline.Outcome
}

func (s *Summary) add(outcome pipeline.Outcome) {
	s.Total++
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Status {
	case pipeline.StatusCompleted:
		s.Completed++
	case pipeline.StatusSkipped:
		s.Skipped++
	case pipeline.StatusFailed:
		s.Failed++
	}
}

// AllFailed reports whether every processed job failed. Partial failure
// keeps the overall exit status at zero; only a fully failed batch is an
// error.
func (s Summary) AllFailed() bool {
	return s.Total > 0 && s.Failed == s.Total
}
