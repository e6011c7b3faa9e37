package placement

// ProgressReporter receives per-guide completion ticks from the batch
// operations. Implementations must be cheap; they are invoked once per
// guide on the calling goroutine.
type ProgressReporter interface {
	Progress(current, total int)
}

// ProgressFunc adapts a plain function to ProgressReporter.
type ProgressFunc func(current, total int)

// Progress implements ProgressReporter.
func (f ProgressFunc) Progress(current, total int) {
	f(current, total)
}

func reportProgress(p ProgressReporter, current, total int) {
	if p != nil {
		p.Progress(current, total)
	}
}
