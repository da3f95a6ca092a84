package logger

import "go.uber.org/zap"

// New builds a JSON logger writing to stdout. Development environments get
// debug level.
func New(env string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	if env == "development" {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}
