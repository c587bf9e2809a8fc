/*
Package appender provides destinations for the messages a [logger.Logger] dispatches.

Every Appender embeds [logger.Base] and attaches itself to the [logger.Hub] it is constructed with.
Constructing one with a nil Hub leaves it detached,
which is how an Appender is handed to a decorator such as [Throttle].

Some Appenders buffer messages rather than deliver them in Append:
[Topic] and [Store] queue messages until Flush is called.
Call Flush when it is safe to block on the network,
and Close when done with the Appender; Close flushes what is left.

Appenders never return errors from Append.
Those that can fail report to an [ErrorHandler], [Stderr] by default.
*/
package appender
