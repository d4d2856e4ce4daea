package logger

import (
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init настраивает логгер приложения. В development пишем текстом,
// в остальных окружениях JSON для сборщика логов.
func Init(level, env string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if env == "development" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// L возвращает логгер приложения. До Init (в тестах, в утилитах)
// используется стандартный логгер logrus.
func L() *logrus.Logger {
	if Log == nil {
		return logrus.StandardLogger()
	}
	return Log
}

// Component помечает записи именем подсистемы.
func Component(name string) *logrus.Entry {
	return L().WithField("component", name)
}
