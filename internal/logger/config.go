package logger

import (
	"log/slog"
	"strings"
)

// Config drives InitLogger. Level and Format are matched case-insensitively.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used when the caller has no application config yet.
func DefaultConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatText, DefaultServiceName, DefaultVersion, EnvironmentDev, false)
}

func ProductionConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatJSON, DefaultServiceName, ProductionVersion, EnvironmentProduction, false)
}

func DevelopmentConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = LogLevelDebug
	cfg.AddSource = true
	return cfg
}

// ConfigForEnvironment picks the preset matching env. Unknown values get DefaultConfig.
func ConfigForEnvironment(env string) Config {
	switch strings.ToLower(env) {
	case EnvironmentProduction, "production":
		return ProductionConfig()
	case EnvironmentDev, "development":
		return DevelopmentConfig()
	default:
		cfg := DefaultConfig()
		if env != "" {
			cfg.Environment = env
		}
		return cfg
	}
}

func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record the handler emits.
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
