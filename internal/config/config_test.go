package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneforge/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantInstall := filepath.Join(tempHome, ".local", "share", "sceneforge", "tools")
	if cfg.Paths.InstallDir != wantInstall {
		t.Fatalf("unexpected install dir: got %q want %q", cfg.Paths.InstallDir, wantInstall)
	}
	if !filepath.IsAbs(cfg.Paths.ScenesDir) {
		t.Fatalf("expected absolute scenes dir, got %q", cfg.Paths.ScenesDir)
	}
	if cfg.Extract.QScale != 2 {
		t.Fatalf("unexpected qscale default: %d", cfg.Extract.QScale)
	}
	if !cfg.Features.SingleCamera || !cfg.Features.UseGPU {
		t.Fatal("expected single_camera and use_gpu enabled by default")
	}
	if cfg.Features.MaxImageSize != 4096 {
		t.Fatalf("unexpected max image size: %d", cfg.Features.MaxImageSize)
	}
	if cfg.Matching.Overlap != 15 {
		t.Fatalf("unexpected overlap default: %d", cfg.Matching.Overlap)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.HistoryPath() != filepath.Join(cfg.Paths.LogDir, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadReadsTOMLOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := strings.Join([]string{
		"[paths]",
		`scenes_dir = "~/reconstructions"`,
		"",
		"[extract]",
		"qscale = 5",
		"",
		"[matching]",
		"overlap = 30",
		"",
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.ScenesDir != filepath.Join(tempHome, "reconstructions") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.ScenesDir)
	}
	if cfg.Extract.QScale != 5 {
		t.Fatalf("unexpected qscale: %d", cfg.Extract.QScale)
	}
	if cfg.Matching.Overlap != 30 {
		t.Fatalf("unexpected overlap: %d", cfg.Matching.Overlap)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "qscale out of range",
			body: "[extract]\nqscale = 40\n",
			want: "extract.qscale",
		},
		{
			name: "negative overlap",
			body: "[matching]\noverlap = -3\n",
			want: "matching.overlap",
		},
		{
			name: "unknown log format",
			body: "[logging]\nformat = \"xml\"\n",
			want: "logging.format",
		},
		{
			name: "unknown log level",
			body: "[logging]\nlevel = \"loud\"\n",
			want: "logging.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Matching.Overlap != 15 {
		t.Fatalf("sample should carry defaults, got overlap %d", cfg.Matching.Overlap)
	}
}
