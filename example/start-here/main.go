/*
start-here is a toy use of lumber's logging stack,
focusing on the basics of:

(1) assembling a Ranger from the environment;
(2) logging through Loggers with their own contexts;
(3) bridging code that wants an io.Writer, such as the standard library's log package;
(4) and serving the admin API until interrupted.

Try it with:

	LOG_LEVEL=debug LOG_MEMORY_SIZE=50 LOG_ADMIN_ADDR=localhost:8081 go run ./example/start-here

then, in another shell:

	curl localhost:8081/level
	curl -X PUT -d '{"level":"WARN"}' localhost:8081/level
	curl localhost:8081/appenders
*/
package main

import (
	"context"
	"log"
	"time"

	"github.com/xy-planning-network/lumber/logger"
	"github.com/xy-planning-network/lumber/ranger"
)

func main() {
	if err := ranger.Load(); err != nil {
		log.Fatal(err)
	}

	rng, err := ranger.New(context.Background(), ranger.FromEnv())
	if err != nil {
		log.Fatal(err)
	}

	l := rng.Logger("main")
	l.Info("starting with level %", rng.Hub().Level())

	std := log.New(l.WithContext("stdlib").Writer(logger.LevelWarning), "", 0)
	std.Println("written through the standard library")

	go tick(rng.Logger("ticker"))

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}
}

// tick logs at every Level so changing the Hub's Level through the admin API is visible.
func tick(l *logger.Logger) {
	n := 0
	for range time.Tick(2 * time.Second) {
		n++
		for _, level := range logger.Levels() {
			l.Log(level, "tick % at %", n, level)
		}

		if l.Enabled(logger.LevelDebug) {
			l.Debug("squared %", n*n)
		}
	}
}
