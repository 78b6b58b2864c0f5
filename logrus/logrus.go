package logrus

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"github.com/sirupsen/logrus"
	"io"
	"os"
)

type wrapper struct {
	*logrus.Entry
}

func (w *wrapper) WithField(key string, value interface{}) dealing.Logger {
	return &wrapper{w.Entry.WithField(key, value)}
}

func (w *wrapper) WithFields(fields map[string]interface{}) dealing.Logger {
	return &wrapper{w.Entry.WithFields(fields)}
}

// NewLogger wraps the given logrus logger.
func NewLogger(logger *logrus.Logger) dealing.Logger {
	return &wrapper{logrus.NewEntry(logger)}
}

// ConfigureStandardLogger configures the standard logrus logger and returns
// it wrapped. Logs are written to the standard error so they do not mix with
// the command output.
func ConfigureStandardLogger(format, level string) (dealing.Logger, error) {
	return configure(logrus.StandardLogger(), os.Stderr, format, level)
}

func configure(
	logger *logrus.Logger,
	output io.Writer,
	format string,
	level string,
) (dealing.Logger, error) {
	fieldMap := logrus.FieldMap{
		logrus.FieldKeyLevel: "severity",
		logrus.FieldKeyMsg:   "message",
	}

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: fieldMap,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			FieldMap:      fieldMap,
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("could not parse log level: [%v]", err)
	}

	logger.SetLevel(logLevel)

	logger.SetOutput(output)

	return &wrapper{logger.WithFields(map[string]interface{}{})}, nil
}
