// Package progress defines the progress update type shared between the
// batch workers and the presentation layers.
package progress

// ProgressUpdate reports the progress of a single worker.
type ProgressUpdate struct {
	// WorkerIndex identifies the reporting worker (0-based).
	WorkerIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}
