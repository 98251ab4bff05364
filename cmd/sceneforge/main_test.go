package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeStubTool(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestConfigInitCreatesSampleAndRefusesOverwrite(t *testing.T) {
	isolateHome(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := executeCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to mention %s, got %q", target, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	if _, err := executeCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := executeCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateFallsBackToDefaults(t *testing.T) {
	isolateHome(t)

	out, err := executeCommand(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "defaults were used") {
		t.Fatalf("expected defaults notice, got %q", out)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("expected validity confirmation, got %q", out)
	}
}

func TestConfigShowReflectsScenesDirOverride(t *testing.T) {
	isolateHome(t)
	custom := t.TempDir()

	out, err := executeCommand(t, "--scenes-dir", custom, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, custom) {
		t.Fatalf("expected overridden scenes dir %s in output, got %q", custom, out)
	}
}

func TestRootRejectsUnknownEngine(t *testing.T) {
	isolateHome(t)

	_, err := executeCommand(t, "--tool", "meshroom", "clip.mp4")
	if err == nil || !strings.Contains(err.Error(), "unknown engine") {
		t.Fatalf("expected unknown engine error, got %v", err)
	}
}

func TestRootWithoutArgsShowsHelp(t *testing.T) {
	isolateHome(t)

	out, err := executeCommand(t)
	if err != nil {
		t.Fatalf("bare invocation: %v", err)
	}
	if !strings.Contains(out, "VIDEO...") {
		t.Fatalf("expected usage output, got %q", out)
	}
}

func TestToolsCommandReportsAvailability(t *testing.T) {
	isolateHome(t)
	binDir := t.TempDir()
	for _, name := range []string{"ffmpeg", "colmap", "glomap"} {
		writeStubTool(t, binDir, name)
	}
	t.Setenv("PATH", binDir)

	out, err := executeCommand(t, "tools")
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	for _, name := range []string{"ffmpeg", "colmap", "glomap"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output, got %q", name, out)
		}
	}
	if !strings.Contains(out, "yes") {
		t.Fatalf("expected available tools, got %q", out)
	}
}

func TestToolsCommandFailsWhenToolsMissing(t *testing.T) {
	isolateHome(t)
	t.Setenv("PATH", t.TempDir())

	out, err := executeCommand(t, "tools")
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected missing-tool error, got %v (output %q)", err, out)
	}
}

func TestToolsCommandSkipsGlomapForColmapEngine(t *testing.T) {
	isolateHome(t)
	binDir := t.TempDir()
	writeStubTool(t, binDir, "ffmpeg")
	writeStubTool(t, binDir, "colmap")
	t.Setenv("PATH", binDir)

	out, err := executeCommand(t, "tools", "--tool", "colmap")
	if err != nil {
		t.Fatalf("tools --tool colmap: %v", err)
	}
	if strings.Contains(out, "glomap") {
		t.Fatalf("colmap engine must not probe glomap, got %q", out)
	}
}
