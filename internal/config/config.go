package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/park285/voicechess/internal/obslog"
)

type AppConfig struct {
	SegmentWSURL   string
	SegmentAPIKey  string
	WSMaxReconnect int

	ApplyOnPartial bool
	HistoryLimit   int

	RedisURL       string
	SnapshotTTLSec int

	DisplayBaseURL   string
	DisplayTimeoutMS int

	MessagesDir string

	LogLevel     string
	LogFormat    string
	LogToConsole bool
	LogToFile    bool
	LogFile      string
	LogCaller    bool
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		WSMaxReconnect:   5,
		ApplyOnPartial:   false,
		HistoryLimit:     64,
		SnapshotTTLSec:   3600,
		DisplayTimeoutMS: 5000,
		LogLevel:         "info",
		LogFormat:        "legacy",
		LogToConsole:     true,
		LogFile:          "logs/voicechess.log",
	}

	cfg.SegmentWSURL = strings.TrimSpace(os.Getenv("SEGMENT_WS_URL"))
	cfg.SegmentAPIKey = strings.TrimSpace(os.Getenv("SEGMENT_API_KEY"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DisplayBaseURL = strings.TrimSpace(os.Getenv("DISPLAY_BASE_URL"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	cfg.ApplyOnPartial = envBool("APPLY_ON_PARTIAL", cfg.ApplyOnPartial)
	cfg.HistoryLimit = envPositiveInt("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.SnapshotTTLSec = envPositiveInt("SNAPSHOT_TTL_SEC", cfg.SnapshotTTLSec)
	cfg.DisplayTimeoutMS = envPositiveInt("DISPLAY_TIMEOUT_MS", cfg.DisplayTimeoutMS)
	// 0 disables reconnects
	if v := strings.TrimSpace(os.Getenv("WS_MAX_RECONNECT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.WSMaxReconnect = n
		}
	}

	// Logging
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	cfg.LogToConsole = envBool("LOG_TO_CONSOLE", cfg.LogToConsole)
	cfg.LogToFile = envBool("LOG_TO_FILE", cfg.LogToFile)
	cfg.LogCaller = envBool("LOG_CALLER", cfg.LogCaller)

	if cfg.SegmentWSURL == "" {
		return nil, errors.New("SEGMENT_WS_URL is required")
	}

	return cfg, nil
}

func (c *AppConfig) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSec) * time.Second
}

func (c *AppConfig) DisplayTimeout() time.Duration {
	return time.Duration(c.DisplayTimeoutMS) * time.Millisecond
}

// ObslogOptions maps the LOG_* settings onto the logger options.
func (c *AppConfig) ObslogOptions() obslog.Options {
	opts := obslog.Options{
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		Console: c.LogToConsole,
		Caller:  c.LogCaller,
	}
	if c.LogToFile {
		opts.File = c.LogFile
	}
	return opts
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envPositiveInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
