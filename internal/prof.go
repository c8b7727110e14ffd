// Package internal holds helpers for the datatool command.
package internal

import (
	"os"
	"runtime/pprof"

	"go.uber.org/zap"
)

// CPUProfile writes a CPU profile to path until the returned function is called
func CPUProfile(path string, logger *zap.Logger) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	logger.Debug("cpu profiling", zap.String("path", path))
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			logger.Warn("could not write cpu profile", zap.String("path", path), zap.Error(err))
		}
	}, nil
}
