// Package logging configures the process-wide logrus logger.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Setup applies the configured level and format to the standard logger.
// Unknown levels fall back to info rather than failing startup.
func Setup(level, format string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
		logrus.WithField("level", level).Warn("Unknown log level, using info")
	}
	logrus.SetLevel(parsed)

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
