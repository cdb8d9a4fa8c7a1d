package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultEncoder   = "aac"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Encoders enumerates the audio encoders the muxing backend accepts.
var Encoders = []string{"aac", "alac", "flac", "libmp3lame", "mpeg4"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Binding: Binding{
			Encoder:         defaultEncoder,
			Extensions:      []string{".mp3"},
			CoverCandidates: []string{"cover.jpg", "cover.png"},
		},
		ProbeCache: ProbeCache{
			Enabled: true,
			Path:    defaultProbeCachePath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultProbeCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "bookbind", "probe.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/bookbind/probe.db"
	}
	return filepath.Join(home, ".cache", "bookbind", "probe.db")
}
