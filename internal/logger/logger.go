// Package logger provides the package-level zap logger shared across the
// voxel store and its command-line driver.
package logger

import "go.uber.org/zap"

// Log is the shared logger. It is a no-op logger until Init is called.
var Log *zap.Logger = zap.NewNop()

// Init sets up the global logger for production use. Safe to call more than
// once; the last call wins.
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		// Fall back to a no-op logger rather than failing generation because
		// logging could not be set up.
		Log = zap.NewNop()
		return
	}
	Log = logger
}

// InitDevelopment sets up the global logger with human-friendly console
// output, for use from cmd/voxelgen and from tests that want visible logs.
func InitDevelopment() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		Log = zap.NewNop()
		return
	}
	Log = logger
}
