package md2page

import "runtime"

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps automatic sizing.
	MaxPoolSize = 32
)

// ResolvePoolSize determines how many documents to convert in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	return min(max(runtime.GOMAXPROCS(0), MinPoolSize), MaxPoolSize)
}
