package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Production logs are JSON at info level, everything
// else is text at debug level.
func New(env string) *logrus.Entry {
	l := logrus.New()

	if env == "production" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		l.Level = logrus.DebugLevel
	}

	return l.WithField("env", env)
}

// Discard returns a logger that writes nowhere, for tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.Out = io.Discard
	return logrus.NewEntry(l)
}
