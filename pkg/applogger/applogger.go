package applogger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var once sync.Once

var logger *logrus.Logger

func GetLogrus() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	})

	return logger
}
