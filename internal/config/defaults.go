package config

import "judder/internal/framerate"

const (
	defaultStateDir       = "~/.local/share/judder"
	defaultLogDir         = "~/.local/share/judder/logs"
	defaultReferenceFPS   = 30
	defaultFFprobeBinary  = "ffprobe"
	defaultFFprobeTimeout = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Analysis: Analysis{
			ReferenceFPS: defaultReferenceFPS,
			Rates:        framerate.Defaults(),
		},
		FFprobe: FFprobe{
			Binary:         defaultFFprobeBinary,
			TimeoutSeconds: defaultFFprobeTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
