package ranger

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar         = "LOG_LEVEL"
	defaultLogLevel        = logger.LevelInfo
	logFormatEnvVar        = "LOG_FORMAT"
	logTimeEnvVar          = "LOG_TIME"
	logTimeLayoutEnvVar    = "LOG_TIME_LAYOUT"
	defaultLogTimeLayout   = time.RFC3339
	logTailEnvVar          = "LOG_TAIL"
	logFlushEnvVar         = "LOG_FLUSH_INTERVAL"
	DefaultFlushInterval   = 5 * time.Second
	logConsoleEnvVar       = "LOG_CONSOLE"
	logColorEnvVar         = "LOG_COLOR"
	logMemorySizeEnvVar    = "LOG_MEMORY_SIZE"
	defaultLogMemorySize   = 0
	logFileEnvVar          = "LOG_FILE"
	logFileMaxSizeEnvVar   = "LOG_FILE_MAX_SIZE"
	logFileMaxBackupEnvVar = "LOG_FILE_MAX_BACKUPS"
	logFileMaxAgeEnvVar    = "LOG_FILE_MAX_AGE"
	logFileCompressEnvVar  = "LOG_FILE_COMPRESS"

	// Redis defaults
	logRedisURLEnvVar        = "LOG_REDIS_URL"
	logRedisTopicEnvVar      = "LOG_REDIS_TOPIC"
	defaultLogRedisTopic     = "lumber"
	logRedisLevelTopicEnvVar = "LOG_REDIS_LEVEL_TOPIC"

	// Socket defaults
	logSocketNetworkEnvVar  = "LOG_SOCKET_NETWORK"
	defaultLogSocketNetwork = "tcp"
	logSocketAddrEnvVar     = "LOG_SOCKET_ADDR"
	logSocketTimeoutEnvVar  = "LOG_SOCKET_TIMEOUT"
	defaultLogSocketTimeout = 5 * time.Second

	// Sentry defaults
	sentryDsnEnvVar    = "SENTRY_DSN"
	sentryLevelEnvVar  = "SENTRY_LEVEL"
	defaultSentryLevel = logger.LevelError
	sentryRateEnvVar   = "LOG_RATE"
	sentryBurstEnvVar  = "LOG_BURST"
	defaultSentryBurst = 10
	defaultSentryRate  = 0

	// Database defaults
	dbURLEnvVar       = "DATABASE_URL"
	logDBBatchEnvVar  = "LOG_DB_BATCH"
	defaultLogDBBatch = 100

	// Admin server defaults
	adminAddrEnvVar           = "LOG_ADMIN_ADDR"
	adminCORSEnvVar           = "LOG_ADMIN_CORS"
	adminAccessLogEnvVar      = "LOG_ADMIN_ACCESS_LOG"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 0
)

// A TimeKind names the source of the time a Hub renders with %t.
type TimeKind string

const (
	// TimeUptime renders milliseconds since the Hub started.
	TimeUptime TimeKind = "uptime"

	// TimeClock renders the wall clock with Config.TimeLayout.
	TimeClock TimeKind = "clock"

	// TimeNone renders nothing.
	TimeNone TimeKind = "none"
)

func (k TimeKind) String() string { return string(k) }

func (k TimeKind) Valid() error {
	switch k {
	case TimeUptime, TimeClock, TimeNone:
		return nil
	default:
		return fmt.Errorf("%w: time %q", lumber.ErrNotValid, string(k))
	}
}

// A Config describes the logging stack a Ranger assembles.
// Zero values disable the optional appenders.
type Config struct {
	Env lumber.Environment

	Level logger.Level

	// Format is the format every appender starts with; empty means logger.DefaultFormat.
	// An appender rendering nothing gets its empty format afterwards,
	// with SetFormat or PUT /appenders/{id}/format on the admin API.
	Format string
	Time   TimeKind

	// TimeLayout formats the wall clock when Time is TimeClock.
	TimeLayout string
	Tail       logger.TailPolicy

	// FlushInterval is how often buffered appenders are flushed in the background.
	// Zero or less only flushes on Flush and Close.
	FlushInterval time.Duration

	Console    bool
	Color      bool
	MemorySize int
	File       appender.FileConfig

	RedisURL        string
	RedisTopic      string
	RedisLevelTopic string

	SocketNetwork string
	SocketAddr    string
	SocketTimeout time.Duration

	SentryDSN   string
	SentryLevel logger.Level

	// SentryRate limits events sent to Sentry per second; zero or less sends every one.
	SentryRate  float64
	SentryBurst int

	DatabaseURL string
	DBBatch     int

	AdminAddr         string
	AdminCORS         string
	AdminAccessLog    bool
	AdminReadTimeout  time.Duration
	AdminIdleTimeout  time.Duration
	AdminWriteTimeout time.Duration
}

// Load reads .env files into the process environment, as godotenv does.
// With no paths, Load reads ".env".
// Missing files are not an error; variables already set are not overwritten.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		err := godotenv.Load(p)
		var pe *fs.PathError
		if err != nil && !errors.As(err, &pe) {
			return fmt.Errorf("%w: %s: %s", lumber.ErrBadConfig, p, err)
		}
	}

	return nil
}

// FromEnv reads a Config from the environment variables documented on the package.
// Unset or malformed values fall back to their defaults.
func FromEnv() Config {
	env := lumber.EnvVarOrEnv(environmentEnvVar, lumber.Development)

	cfg := Config{
		Env:           env,
		Level:         logger.EnvVarOrLevel(logLevelEnvVar, defaultLogLevel),
		Format:        lumber.EnvVarOrString(logFormatEnvVar, logger.DefaultFormat),
		Time:          TimeKind(lumber.EnvVarOrString(logTimeEnvVar, TimeUptime.String())),
		TimeLayout:    lumber.EnvVarOrString(logTimeLayoutEnvVar, defaultLogTimeLayout),
		Tail:          logger.EnvVarOrTailPolicy(logTailEnvVar, logger.CopyTail),
		FlushInterval: lumber.EnvVarOrDuration(logFlushEnvVar, DefaultFlushInterval),

		Console:    lumber.EnvVarOrBool(logConsoleEnvVar, true),
		Color:      lumber.EnvVarOrBool(logColorEnvVar, env.Colorful()),
		MemorySize: lumber.EnvVarOrInt(logMemorySizeEnvVar, defaultLogMemorySize),
		File: appender.FileConfig{
			Filename:   lumber.EnvVarOrString(logFileEnvVar, ""),
			MaxSize:    lumber.EnvVarOrInt(logFileMaxSizeEnvVar, 0),
			MaxBackups: lumber.EnvVarOrInt(logFileMaxBackupEnvVar, 0),
			MaxAge:     lumber.EnvVarOrInt(logFileMaxAgeEnvVar, 0),
			Compress:   lumber.EnvVarOrBool(logFileCompressEnvVar, false),
		},

		RedisURL:        lumber.EnvVarOrString(logRedisURLEnvVar, ""),
		RedisTopic:      lumber.EnvVarOrString(logRedisTopicEnvVar, defaultLogRedisTopic),
		RedisLevelTopic: lumber.EnvVarOrString(logRedisLevelTopicEnvVar, ""),

		SocketNetwork: lumber.EnvVarOrString(logSocketNetworkEnvVar, defaultLogSocketNetwork),
		SocketAddr:    lumber.EnvVarOrString(logSocketAddrEnvVar, ""),
		SocketTimeout: lumber.EnvVarOrDuration(logSocketTimeoutEnvVar, defaultLogSocketTimeout),

		SentryDSN:   lumber.EnvVarOrString(sentryDsnEnvVar, ""),
		SentryLevel: logger.EnvVarOrLevel(sentryLevelEnvVar, defaultSentryLevel),
		SentryRate:  lumber.EnvVarOrFloat(sentryRateEnvVar, defaultSentryRate),
		SentryBurst: lumber.EnvVarOrInt(sentryBurstEnvVar, defaultSentryBurst),

		DatabaseURL: lumber.EnvVarOrString(dbURLEnvVar, ""),
		DBBatch:     lumber.EnvVarOrInt(logDBBatchEnvVar, defaultLogDBBatch),

		AdminAddr:         lumber.EnvVarOrString(adminAddrEnvVar, ""),
		AdminCORS:         lumber.EnvVarOrString(adminCORSEnvVar, ""),
		AdminAccessLog:    lumber.EnvVarOrBool(adminAccessLogEnvVar, false),
		AdminReadTimeout:  lumber.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		AdminIdleTimeout:  lumber.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		AdminWriteTimeout: lumber.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}

	if cfg.Time.Valid() != nil {
		cfg.Time = TimeUptime
	}

	return cfg
}

// timeFunc builds the TimeFunc c.Time names.
func (c Config) timeFunc(start time.Time) (logger.TimeFunc, error) {
	switch c.Time {
	case TimeUptime, "":
		return logger.Uptime(start), nil
	case TimeClock:
		layout := c.TimeLayout
		if layout == "" {
			layout = defaultLogTimeLayout
		}
		return logger.Clock(layout), nil
	case TimeNone:
		return logger.NoTime, nil
	default:
		return nil, c.Time.Valid()
	}
}
