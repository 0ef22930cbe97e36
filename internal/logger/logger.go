package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

// Configure sets the output format and level of every component logger.
func Configure(env, level string) {
	if env == "production" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
}

func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// New returns a logger tagged with the component name.
func New(component string) *logrus.Entry {
	return base.WithField("component", component)
}
