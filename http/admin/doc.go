/*
Package admin serves an HTTP API for inspecting and reconfiguring a [logger.Hub] while it runs.

	GET    /level                   the Hub's Level
	PUT    /level                   set the Hub's Level: {"level": "WARN"}
	GET    /appenders               registered Appenders, in dispatch order
	PUT    /appenders/{id}/format   set an Appender's format: {"format": "%l %m"}
	DELETE /appenders/{id}          unregister an Appender
	GET    /metrics                 Prometheus metrics, when a Gatherer is configured
	GET    /tail                    a websocket streaming messages, when a Stream is configured

JSON responses wrap their payload under "data"; failures carry an "error" message instead.
*/
package admin
