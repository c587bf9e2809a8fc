/*
Package ranger assembles a lumber logging stack from configuration.

[FromEnv] reads a [Config] from environment variables,
which [Load] can first populate from .env files.
[New] then builds a [logger.Hub] and attaches every appender the Config enables:

	Console   LOG_CONSOLE (default true), LOG_COLOR
	Memory    LOG_MEMORY_SIZE
	Metrics   always
	File      LOG_FILE, LOG_FILE_MAX_SIZE, LOG_FILE_MAX_BACKUPS, LOG_FILE_MAX_AGE, LOG_FILE_COMPRESS
	Socket    LOG_SOCKET_ADDR, LOG_SOCKET_NETWORK, LOG_SOCKET_TIMEOUT
	Topic     LOG_REDIS_URL, LOG_REDIS_TOPIC, LOG_REDIS_LEVEL_TOPIC
	Sentry    SENTRY_DSN, SENTRY_LEVEL, LOG_RATE, LOG_BURST
	Store     DATABASE_URL, LOG_DB_BATCH
	Admin     LOG_ADMIN_ADDR, LOG_ADMIN_CORS, LOG_ADMIN_ACCESS_LOG, SERVER_READ_TIMEOUT, SERVER_IDLE_TIMEOUT, SERVER_WRITE_TIMEOUT

The Hub itself reads ENVIRONMENT, LOG_LEVEL, LOG_FORMAT, LOG_TIME (uptime, clock or none),
LOG_TIME_LAYOUT, LOG_TAIL (copy or truncate) and LOG_FLUSH_INTERVAL.
An unset or empty LOG_FORMAT means [logger.DefaultFormat];
an appender is given an empty format after New, through its SetFormat or the admin API.

A typical main:

	if err := ranger.Load(); err != nil {
		log.Fatal(err)
	}

	rng, err := ranger.New(context.Background(), ranger.FromEnv())
	if err != nil {
		log.Fatal(err)
	}

	rng.Logger("main").Info("starting")
	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}
*/
package ranger
