// FILE: lixenwraith/petmaster/timing.go
package petmaster

import "time"

// Timing constants for the auto-reload watcher and the update checker.
const (
	// File watching intervals (ordered by frequency)
	SpinWaitInterval     = 5 * time.Millisecond   // CPU-friendly busy-wait quantum
	MinPollInterval      = 100 * time.Millisecond // Hard floor for file stat polling
	ShutdownTimeout      = 100 * time.Millisecond // Graceful watcher termination window
	DefaultDebounce      = 500 * time.Millisecond // File change coalescence period
	DefaultPollInterval  = time.Second            // Standard file monitoring frequency
	DefaultReloadTimeout = 5 * time.Second        // Maximum wait for a triggered reload

	// Remote version lookup
	DefaultUpdateTimeout = 10 * time.Second
)

const (
	// shutdownPollCycles defines how many spin-wait cycles comprise a shutdown timeout
	shutdownPollCycles = ShutdownTimeout / SpinWaitInterval // = 20 cycles

	// DefaultMaxWatchers caps reload subscribers per Manager
	DefaultMaxWatchers = 100

	// watchBuffer is the capacity of each subscriber channel
	watchBuffer = 10
)
