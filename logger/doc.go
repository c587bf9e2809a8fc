/*
Package logger renders leveled, templated messages and dispatches them to Appenders.

# Overview

A [Logger] logs messages at a [Level].
Every Logger belongs to a [Hub], which holds what its Loggers share:
the minimum Level, the [TimeFunc], and the [Registry] of [Appender]s.
A message logged below the Hub's minimum Level, or at [LevelOff], costs nothing:
neither the message nor its arguments are rendered.

	hub := logger.NewHub(logger.WithLevel(logger.LevelInfo))
	l := hub.Logger("billing")
	l.Info("charged % for % cents", customer, amount)

[New] constructs Loggers on the package-level [Default] Hub.

# Templates

A message template substitutes arguments for '%' placeholders, left to right:

	l.Debug("logger test % bar %", 42, 3.15) // logger test 42 bar 3.15

Arguments are rendered with [fmt.Sprint].
What happens to placeholders left over once arguments run out is the Hub's [TailPolicy].

# Formats

Each Appender lays out messages with its own format.
A format is text with directives:

	%t  the time, zero-padded to 20 characters
	%l  the fixed-width level name
	%c  the Logger's context
	%m  the message

With [DefaultFormat] and a Logger labeled "test", the message above renders as:

	[00000000000123456789][DEBUG][test] logger test 42 bar 3.15

# Appenders

Appenders embed [Base] and attach themselves to a Hub when constructed.
Unregistering is idempotent; a Hub never owns its Appenders.
Package appender provides Appenders for consoles, files, pub/sub topics, databases and more.
*/
package logger
