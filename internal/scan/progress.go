package scan

// ProgressFunc receives overall scan progress in [0,100]. It is polled
// between strategies/segments; implementations must be cheap and must not
// block.
type ProgressFunc func(percent int)

// stageProgress folds per-strategy engine progress into an overall 0-100
// value: completed strategies contribute their full share, the running
// strategy contributes its intra-engine fraction.
type stageProgress struct {
	total    int
	done     int
	fn       ProgressFunc
	lastSent int
}

func newStageProgress(total int, fn ProgressFunc) *stageProgress {
	p := &stageProgress{total: total, fn: fn, lastSent: -1}
	p.emit(0)
	return p
}

// engineFunc returns the ProgressFunc handed to the engine for the current
// strategy.
func (p *stageProgress) engineFunc() func(int) {
	if p.fn == nil {
		return nil
	}
	return func(intra int) {
		if intra < 0 {
			intra = 0
		}
		if intra > 100 {
			intra = 100
		}
		p.emit((p.done*100 + intra) / p.total)
	}
}

// step marks one strategy complete.
func (p *stageProgress) step() {
	p.done++
	p.emit(p.done * 100 / p.total)
}

// finish forces the terminal update.
func (p *stageProgress) finish() { p.emit(100) }

func (p *stageProgress) emit(percent int) {
	if p.fn == nil || percent == p.lastSent {
		return
	}
	p.lastSent = percent
	p.fn(percent)
}
