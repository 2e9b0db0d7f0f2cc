package db

import (
	"gorm.io/gorm/logger"
)

// NewLogger maps the app's log level onto gorm's logger. SQL statements are
// only emitted at trace level; otherwise gorm stays silent so the JSON log
// stream remains readable.
func NewLogger(logLevel string) logger.Interface {
	switch logLevel {
	case "trace":
		return logger.Default.LogMode(logger.Info)
	case "error":
		return logger.Default.LogMode(logger.Error)
	}
	return logger.Default.LogMode(logger.Silent)
}
