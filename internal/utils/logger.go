package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// appFieldHook stamps every entry with the application name so multiplexed
// logs stay attributable.
type appFieldHook struct {
	app string
}

func (h *appFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.app
	return nil
}

// WithOp tags an entry with the operation it belongs to (submit, refresh,
// list, ...) so related lines can be filtered together.
func WithOp(op string) *logrus.Entry {
	return Logger.WithField("op", op)
}

func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.AddHook(&appFieldHook{app: appName})
}
