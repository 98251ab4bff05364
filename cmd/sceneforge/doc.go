// Package main hosts the SceneForge CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into batch
// pipeline runs, tool availability checks, run-history queries, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can stay declarative.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
