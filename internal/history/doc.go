// Package history persists per-video outcomes across batch runs in a
// SQLite database. The store is advisory: the pipeline never reads it for
// skip decisions (scene-directory existence governs those), it only feeds
// the history command.
package history
