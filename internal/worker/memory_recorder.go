// Package worker provides background goroutines that run alongside the
// HTTP server.
//
// MemoryRecorder samples the resident set size of this process once per
// tick and appends the raw byte count to a data file, one value per
// line. The benchmark plots read that file directly.
package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// MemoryRecorder appends RSS samples of the current process to a file.
type MemoryRecorder struct {
	path     string
	interval time.Duration
	logger   *zap.Logger
}

// NewMemoryRecorder constructs a MemoryRecorder.
//
//   - path     – file the samples are appended to.
//   - interval – how often to sample; defaults to 1 s if zero.
//   - logger   – structured logger.
func NewMemoryRecorder(path string, interval time.Duration, logger *zap.Logger) *MemoryRecorder {
	if interval <= 0 {
		interval = time.Second
	}
	return &MemoryRecorder{
		path:     path,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the sampling loop. It blocks until ctx is cancelled, making
// it suitable for running inside a goroutine alongside the HTTP server.
//
//	go recorder.Run(ctx)
func (r *MemoryRecorder) Run(ctx context.Context) {
	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Error("opening memory watcher file failed",
			zap.String("path", r.path),
			zap.Error(err))
		return
	}
	defer file.Close()

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		r.logger.Error("resolving own process failed", zap.Error(err))
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("started recording memory consumption",
		zap.String("path", r.path),
		zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("memory recorder stopping")
			return
		case <-ticker.C:
			r.sample(ctx, proc, file)
		}
	}
}

// sample fetches the current RSS and appends it as a decimal byte count.
func (r *MemoryRecorder) sample(ctx context.Context, proc *process.Process, file *os.File) {
	info, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		r.logger.Warn("reading memory stats failed", zap.Error(err))
		return
	}

	if _, err := fmt.Fprintf(file, "%d\n", info.RSS); err != nil {
		r.logger.Warn("writing memory sample failed", zap.Error(err))
	}
}
