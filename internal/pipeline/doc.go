// Package pipeline sequences the reconstruction stages for one video:
// frame extraction, feature extraction, sequential matching, sparse
// mapping, and a best-effort text export. A video whose scene directory
// already exists is skipped wholesale; a failing stage ends that video's
// run without touching the rest of the batch.
package pipeline
