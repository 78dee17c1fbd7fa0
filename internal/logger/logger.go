package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// Get returns the process-wide logger
func Get() *logrus.Logger {
	return logg
}

// Configure applies the level from config; an unknown level keeps the current one
func Configure(level string, out io.Writer) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logg.SetLevel(lvl)
	}
	if out != nil {
		logg.SetOutput(out)
	}
}

// Component returns an entry tagged with the component name
func Component(name string) *logrus.Entry {
	return logg.WithField("component", name)
}

// LogError logs err with the module/function it came from and optional payload
func LogError(moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logg.WithFields(fields).Error(err.Error())
}
