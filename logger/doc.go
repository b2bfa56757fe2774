/*
Package logger provides logging functionality to the weblog by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

Log messages emitted by [ColorLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2024/04/28 15:55:21 [ERROR] blog/handler.go:43 'could not list entries' log_context: {"error":"database is locked"}

The log context is a JSON-encoded [*LogContext].
Passwords submitted in a form never appear in it.

When SENTRY_DSN is set, [New] returns a [SentryLogger],
which additionally reports warnings and errors carrying a [LogContext.Error].
*/
package logger
