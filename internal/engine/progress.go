package engine

// Progress is one event on a conversion's progress stream. Percent is
// monotonically non-decreasing during a run; the only terminal values
// a consumer must recognize are 100 (success) and -1 (failure).
type Progress struct {
	Percent int
	Message string
}

const (
	// ProgressFailed is the reserved terminal failure signal.
	ProgressFailed = -1
	// ProgressDone is the reserved terminal success signal.
	ProgressDone = 100
)

// notify emits an intermediate event. The send is lossy so a slow
// consumer never stalls the pipeline, and the last buffer slot stays
// reserved for the terminal event. Only the run goroutine sends.
func (p *Project) notify(percent int, message string) {
	if len(p.events) >= cap(p.events)-1 {
		return
	}
	select {
	case p.events <- Progress{Percent: percent, Message: message}:
	default:
	}
}

// terminal emits the run's final event. The reserved slot guarantees
// it is delivered even when no consumer drained the stream.
func (p *Project) terminal(percent int, message string) {
	select {
	case p.events <- Progress{Percent: percent, Message: message}:
	default:
	}
}
