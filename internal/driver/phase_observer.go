package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary. Phase names match the
// observ timer phases: format, decode, resolve, fix.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during RunCheck and RunFix.
type PhaseObserver func(PhaseEvent)

// beginPhase opens a timer phase and notifies the observer; the returned
// func closes both.
func beginPhase(opts *Options, name string) func(note string) {
	start := time.Now()
	idx := -1
	if opts.Timer != nil {
		idx = opts.Timer.Begin(name)
	}
	if opts.Observer != nil {
		opts.Observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return func(note string) {
		if opts.Timer != nil {
			opts.Timer.End(idx, note)
		}
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
		}
	}
}
