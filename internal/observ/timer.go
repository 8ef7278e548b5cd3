package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed segment of a verification run (format, decode,
// resolve, fix).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer accumulates phases in begin order. It is not safe for concurrent
// use; the pipeline runs phases sequentially.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin opens a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase at idx. Закрытие чужого или несуществующего
// индекса молча игнорируется.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport is the rendered form of one phase.
type PhaseReport struct {
	Name       string
	DurationMS float64
	Note       string
}

// Report aggregates every closed phase plus the total.
type Report struct {
	TotalMS float64
	Phases  []PhaseReport
}

func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	out := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		out.Phases[i] = PhaseReport{
			Name:       p.Name,
			DurationMS: toMillis(p.Dur),
			Note:       p.Note,
		}
	}
	out.TotalMS = toMillis(total)
	return out
}

// Summary renders the phase table printed by --timings.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
