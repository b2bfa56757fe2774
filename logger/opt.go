package logger

import "log"

// A LoggerOptFn is a functional option configuring a ColorLogger when constructing a new one.
type LoggerOptFn func(*ColorLogger)

// WithEnv sets the environment ColorLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *ColorLogger) {
		l.env = env
	}
}

// WithLevel sets the log level ColorLogger uses.
//
// LogLevelUnk leaves the default in place.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *ColorLogger) {
		if level == LogLevelUnk {
			return
		}
		l.ll = level
	}
}

// WithLogger sets the log.Logger ColorLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *ColorLogger) {
		l.l = log
	}
}

// WithSentryDSN sets the DSN errors are reported to.
// An empty dsn disables reporting, regardless of SENTRY_DSN.
func WithSentryDSN(dsn string) LoggerOptFn {
	return func(l *ColorLogger) {
		l.sentryDSN = dsn
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *ColorLogger) {
		l.skip = skip
	}
}
