package download

import "math"

// ProgressPolicy computes the next displayed percentage from the current one
// and the byte counts reported by the retrieval
type ProgressPolicy interface {
	Next(current float64, frozen bool, total, remaining int64) (float64, bool)
}

// FreezeAtCompletion rounds to one decimal and freezes the percentage the
// first time it reaches 100. The remaining byte count reported upstream may
// overshoot past completion; freezing hides it.
type FreezeAtCompletion struct{}

// Next implements ProgressPolicy
func (FreezeAtCompletion) Next(current float64, frozen bool, total, remaining int64) (float64, bool) {
	if frozen || total <= 0 {
		return current, frozen
	}

	p := math.Round(1000*float64(total-remaining)/float64(total)) / 10
	if p < current {
		p = current
	}
	if int(p) >= 100 {
		return 100, true
	}
	return p, false
}

// AcrossTracks applies FreezeAtCompletion to the byte counts of the whole job,
// so a video and audio download reaches 100 once, after the last track. It
// falls back to per track counts when a declared size is unknown.
type AcrossTracks struct {
	FreezeAtCompletion
}

func (AcrossTracks) spansTracks() {}

// jobScoped is implemented by policies that are fed whole job byte counts
type jobScoped interface {
	spansTracks()
}
