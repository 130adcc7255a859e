package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger for the terminal. The level is
// taken from LOG_LEVEL when set.
func Init() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, err := logrus.ParseLevel(raw)
		if err != nil {
			logrus.Warnf("logger.Init: unknown LOG_LEVEL %q, using info", raw)
		} else {
			level = parsed
		}
	}

	logrus.SetLevel(level)
}
