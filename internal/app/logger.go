package app

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Production gets sampled JSON
// output, everything else gets the human-readable development config.
func NewLogger(isProduction bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if isProduction {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}
	return logger, nil
}
