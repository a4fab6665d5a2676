package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the displayed estimate so a stalled worker never produces an
// absurd figure.
const maxETA = 24 * time.Hour

// minSampleInterval is the smallest elapsed time from which a progress rate
// is derived.
const minSampleInterval = 100 * time.Millisecond

// ProgressState tracks the individual progress of a set of workers and
// computes the aggregate, which is what the consolidated progress bar shows
// when several items are processed in parallel.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState creates a ProgressState tracking the given number of
// workers.
//
// Parameters:
//   - numCalculators: The number of workers to track.
//
// Returns:
//   - *ProgressState: A pointer to the new progress state object.
func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records a new progress value for a specific worker. Updates with an
// out-of-range index are ignored.
//
// Parameters:
//   - index: The index of the worker (0 to numCalculators-1).
//   - value: The progress value (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked workers.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var totalProgress float64
	for _, p := range ps.progresses {
		totalProgress += p
	}
	if ps.numCalculators == 0 {
		return 0.0
	}
	return totalProgress / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with a time estimate derived from the
// observed progress rate.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	startTime    time.Time
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a ProgressWithETA tracking the given number of
// workers, starting the clock immediately.
//
// Parameters:
//   - numCalculators: The number of workers to track.
//
// Returns:
//   - *ProgressWithETA: A pointer to the new tracker.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numCalculators),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a progress value and refreshes the rate estimate.
//
// Parameters:
//   - index: The index of the worker.
//   - value: The progress value (0.0 to 1.0).
//
// Returns:
//   - float64: The new average progress.
//   - time.Duration: The current ETA (0 while not enough data).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	if elapsed := time.Since(p.startTime); elapsed >= minSampleInterval && avg > 0 {
		p.progressRate = avg / elapsed.Seconds()
	}
	return avg, p.etaLocked()
}

// GetETA returns the current time estimate, or 0 when no rate has been
// established yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

// etaLocked computes the ETA from the current average and rate.
// Callers must hold mu.
func (p *ProgressWithETA) etaLocked() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders a time estimate in a compact human form: "2m30s",
// "1h15m", "< 1s", or "calculating..." while no estimate exists.
//
// Parameters:
//   - eta: The estimated remaining duration.
//
// Returns:
//   - string: The formatted estimate.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60

	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatProgressBarWithETA combines a progress bar, a percentage, and the ETA
// into a single status line.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - eta: The estimated remaining duration.
//   - width: The character width of the bar.
//
// Returns:
//   - string: The formatted status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %3.0f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// ProgressBar generates a textual progress bar of the given width, clamping
// the progress value to [0, 1].
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
