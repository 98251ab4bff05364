// Package logging builds the slog loggers used across SceneForge.
//
// It provides a console handler tuned for interactive batch runs (one line
// per event with the video and stage up front), a JSON handler for machine
// consumption, attribute helpers with standardized field names, and context
// decoration so every stage log line carries the video and stage it belongs
// to.
package logging
