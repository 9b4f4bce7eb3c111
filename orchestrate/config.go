package orchestrate

import (
	"runtime"
	"time"
)

// Config tunes the resource budgets and parallelism spec §5 assigns
// defaults to. Zero-valued fields are replaced by those defaults in
// Run.
type Config struct {
	// Parallelism is the worker pool size. Default: one worker per
	// available hardware thread.
	Parallelism int

	// ProgressEvery is how many completed files trigger a progress
	// event, in addition to the stage-transition events. Default: 10.
	ProgressEvery int

	// NodeInterval is how many AST nodes the matcher visits between
	// cancellation polls within one file. Default: 4096.
	NodeInterval int

	// PerFileTimeout aborts matching a single file; the rest of the
	// batch continues. Default: 60s.
	PerFileTimeout time.Duration

	// GlobalTimeout aborts the whole batch. Default: 120s.
	GlobalTimeout time.Duration

	// MaxMatches fails the batch with TooManyMatches once the running
	// total of accepted matches exceeds it. Default: 1,000,000.
	MaxMatches int
}

func (c Config) withDefaults() Config {
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.NumCPU()
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 10
	}
	if c.NodeInterval <= 0 {
		c.NodeInterval = 4096
	}
	if c.PerFileTimeout <= 0 {
		c.PerFileTimeout = 60 * time.Second
	}
	if c.GlobalTimeout <= 0 {
		c.GlobalTimeout = 120 * time.Second
	}
	if c.MaxMatches <= 0 {
		c.MaxMatches = 1_000_000
	}
	return c
}
