package scraper

// scrollVerdict is the outcome of one observation of the reviews pane after
// a scroll step.
type scrollVerdict int

const (
	scrollContinue scrollVerdict = iota
	// scrollTargetReached: enough review blocks are visible.
	scrollTargetReached
	// scrollExhausted: two consecutive steps added no new blocks, so the
	// pane is assumed to have no more content to load.
	scrollExhausted
	// scrollCapped: the hard iteration bound was hit.
	scrollCapped
)

func (v scrollVerdict) String() string {
	switch v {
	case scrollTargetReached:
		return "target_reached"
	case scrollExhausted:
		return "content_exhausted"
	case scrollCapped:
		return "safety_cap"
	default:
		return "continue"
	}
}

// scrollTracker decides when the scroll-and-collect loop is done. It is a
// pure state machine fed the visible review-block count after each scroll
// step; the target check always wins over the no-progress check.
type scrollTracker struct {
	target   int
	maxSteps int
	steps    int
	last     int
	stalls   int
}

func newScrollTracker(target, maxSteps int) *scrollTracker {
	if target < 0 {
		target = 0
	}
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &scrollTracker{target: target, maxSteps: maxSteps}
}

// observe records the visible count after one scroll step and returns the
// verdict for that step.
func (t *scrollTracker) observe(visible int) scrollVerdict {
	t.steps++
	if visible >= t.target {
		return scrollTargetReached
	}
	if visible > t.last {
		t.stalls = 0
	} else {
		t.stalls++
	}
	t.last = visible
	if t.stalls >= 2 {
		return scrollExhausted
	}
	if t.steps >= t.maxSteps {
		return scrollCapped
	}
	return scrollContinue
}
