// Package batch enumerates input videos into jobs, runs each one's
// pipeline strictly in order, and folds the outcomes into a run summary.
// A lock on the scenes root keeps two invocations from racing skip checks
// over the same scene tree.
package batch
