package domain

// Priority identifies the work class a render was produced at. The host core
// does not define priority semantics; it only threads the tag through to the
// scheduler lanes and the dumper.
type Priority int

const (
	// PriorityNoWork marks a node with no scheduled work.
	PriorityNoWork Priority = iota
	// PrioritySync commits on the calling goroutine without scheduling.
	PrioritySync
	// PriorityAnimation is flushed through the animation scheduler class.
	PriorityAnimation
	// PriorityDeferred is flushed through the deferred scheduler class,
	// under a shrinking time budget.
	PriorityDeferred
)

// String returns the lowercase priority name used in dump output.
func (p Priority) String() string {
	switch p {
	case PriorityNoWork:
		return "nowork"
	case PrioritySync:
		return "sync"
	case PriorityAnimation:
		return "animation"
	case PriorityDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Scheduler class names. Each class is a single callback slot with
// overwrite-on-schedule semantics.
const (
	ClassAnimation = "animation"
	ClassDeferred  = "deferred"
)

// DeadlineQuantum is the fixed amount a deferred deadline shrinks by on each
// time-remaining query, simulating successive interruption checks.
const DeadlineQuantum = 5
