package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithUpdateInterval sets how often a report is logged.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithFrameBudget sets the per-frame work time above which a frame counts as an overrun.
// Zero disables overrun counting.
//
// Parameters:
//   - budget: the frame budget
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithFrameBudget(budget time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.budget = budget
	}
}

// WithLogFunc replaces log.Printf as the report sink.
//
// Parameters:
//   - logf: printf-style function receiving each report line
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogFunc(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logf = logf
	}
}
