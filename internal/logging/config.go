package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables that override the profile defaults.
const (
	EnvLogLevel     = "SINGLETON_LOG_LEVEL"
	EnvLogTimestamp = "SINGLETON_LOG_TIMESTAMP"
	EnvLogNoColor   = "SINGLETON_LOG_NOCOLOR"
)

// Profile selects the defaults Configure starts from.
type Profile int

const (
	ProfileRuntime Profile = iota // info level, timestamps
	ProfileTest                   // debug level, no timestamps, no color
)

// Config describes how the shared logger is built.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Out       io.Writer
}

var (
	configureOnce sync.Once

	mu   sync.RWMutex
	root = zerolog.Nop()
)

// ConfigureRuntime configures the shared logger for a running program.
func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

// ConfigureTests configures the shared logger for test binaries.
func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure builds the shared logger for the given profile. Only the first
// call has an effect.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		apply(cfg)
	})
}

// SetLevel changes the level of the shared logger after it was configured.
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(lvl)
}

// SetOutput redirects the shared logger. Output written there is plain JSON.
// Writes to w are serialized, so w need not be safe for concurrent use.
func SetOutput(w io.Writer) {
	Configure(ProfileRuntime)
	mu.Lock()
	defer mu.Unlock()
	root = zerolog.New(zerolog.SyncWriter(w)).Level(root.GetLevel())
}

// For returns a child logger tagged with the variant name. The shared logger
// is configured with the runtime profile if nobody configured it yet.
func For(variant string) zerolog.Logger {
	Configure(ProfileRuntime)
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("variant", variant).Logger()
}

func defaultConfig(profile Profile) Config {
	cfg := Config{Out: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
		cfg.NoColor = true
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

func apply(cfg Config) {
	out := zerolog.ConsoleWriter{
		Out:        cfg.Out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	ctx := zerolog.New(out).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}

	mu.Lock()
	defer mu.Unlock()
	root = ctx.Logger()
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel maps a user supplied level name to a zerolog level. The second
// result is false when raw is empty or unknown.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
