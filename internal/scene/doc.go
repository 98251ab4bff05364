// Package scene computes and manages the on-disk layout of one video's
// output: the scene root keyed by the video's file stem, the images and
// sparse subdirectories, and the feature database. The scene root existing
// is the sole idempotency marker; there is no per-stage completeness
// tracking.
package scene
