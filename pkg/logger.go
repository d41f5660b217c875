package pkg

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger crea el logger de la aplicación. En producción se emite JSON,
// en desarrollo texto con timestamps completos.
func NewLogger(level string, production bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err != nil {
		logger.WithField("level", level).Warn("Unknown log level, falling back to info")
	}

	return logger
}
