package config

const (
	defaultScenesDir       = "scenes"
	defaultInstallDir      = "~/.local/share/sceneforge/tools"
	defaultLogDir          = "~/.local/share/sceneforge/logs"
	defaultQScale          = 2
	defaultMaxImageSize    = 4096
	defaultMatchingOverlap = 15
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultHistoryEnabled  = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScenesDir:  defaultScenesDir,
			InstallDir: defaultInstallDir,
			LogDir:     defaultLogDir,
		},
		Extract: Extract{
			QScale: defaultQScale,
		},
		Features: Features{
			SingleCamera: true,
			UseGPU:       true,
			MaxImageSize: defaultMaxImageSize,
		},
		Matching: Matching{
			Overlap: defaultMatchingOverlap,
		},
		Mapper: Mapper{
			Threads: 0,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
