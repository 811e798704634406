package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// InitLogger creates the process logger for the given environment.
// Non-prod environments get the human-readable development config at debug
// level; prod gets the JSON production config.
func InitLogger(env string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.With(zap.String("env", env)), nil
}
