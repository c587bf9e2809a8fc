package ranger

import (
	"io"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
	"github.com/xy-planning-network/lumber/postgres"
)

// A RangerOption configures a *Ranger before New assembles appenders from its Config.
// Options supply dependencies New would otherwise construct from the Config.
type RangerOption func(rng *Ranger)

// WithDB writes the Store appender through db instead of connecting to Config.DatabaseURL.
//
// WithDB assumes a connection has already been established and its migrations run.
func WithDB(db *postgres.DB) RangerOption {
	return func(rng *Ranger) { rng.db = db }
}

// WithHub attaches every appender to hub instead of a new *logger.Hub.
// The Config sets the level and time of hub, but hub keeps its TailPolicy.
func WithHub(hub *logger.Hub) RangerOption {
	return func(rng *Ranger) { rng.hub = hub }
}

// WithPublisher publishes Topic messages with pub instead of a redis client.
// The level topic is only watched when a redis client is also available.
func WithPublisher(pub appender.Publisher) RangerOption {
	return func(rng *Ranger) { rng.pub = pub }
}

// WithRedis publishes and watches the level topic with client instead of dialing Config.RedisURL.
func WithRedis(client *redis.Client) RangerOption {
	return func(rng *Ranger) { rng.redis = client }
}

// WithSentryHub captures events with sh instead of one built from Config.SentryDSN.
func WithSentryHub(sh *sentry.Hub) RangerOption {
	return func(rng *Ranger) { rng.sentryHub = sh }
}

// WithStdout writes the Console appender to w instead of os.Stdout.
func WithStdout(w io.Writer) RangerOption {
	return func(rng *Ranger) { rng.stdout = w }
}
