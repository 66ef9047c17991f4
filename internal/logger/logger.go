// Package logger wires the process-wide structured logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance, initialized by Init before use.
var Log *logrus.Logger

// Init configures the logger from the environment. LOG_LEVEL selects the
// level (default info); LOG_FORMAT=json switches to JSON output for log
// collection, anything else keeps the colored text formatter.
func Init() {
	Log = logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}
