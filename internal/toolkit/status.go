package toolkit

import (
	"sceneforge/internal/config"
)

// Status reports the availability of one external tool.
type Status struct {
	Name      string
	Path      string
	Available bool
	Detail    string
}

// Check evaluates every tool the selected engine needs and reports
// availability without failing. Used by the tools command.
func Check(cfg *config.Config, engine Engine) []Status {
	type probe struct {
		name     string
		override string
	}
	probes := []probe{
		{name: "ffmpeg", override: cfg.Tools.FFmpegPath},
		{name: "colmap", override: cfg.Tools.ColmapPath},
	}
	if engine == EngineGlomap {
		probes = append(probes, probe{name: "glomap", override: cfg.Tools.GlomapPath})
	}

	results := make([]Status, 0, len(probes))
	for _, p := range probes {
		status := Status{Name: p.name}
		path, err := resolveTool(p.name, p.override, cfg.Paths.InstallDir)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Path = path
		status.Available = true
		results = append(results, status)
	}
	return results
}
