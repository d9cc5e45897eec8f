package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Release mode (GIN_MODE=release) logs JSON at info level, any other mode logs
// text at debug level.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(new(logrus.JSONFormatter))
	l.SetLevel(logrus.InfoLevel)

	if os.Getenv("GIN_MODE") != "release" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}

// Component returns an entry tagged with the name of the emitting component.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("component", name)
}
