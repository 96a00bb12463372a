package cycler

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger создает логгер с заданным уровнем. Уровни "off" и "none" отключают вывод,
// нераспознанный уровень заменяется на info.
func NewLogger(levelName string) *logrus.Logger {
	logger := logrus.New()

	if levelName == "off" || levelName == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stderr)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
