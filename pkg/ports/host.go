package ports

import "github.com/aretw0/perch/pkg/domain"

// Host is the mutation capability set the reconciler drives as it commits
// work. Every operation executes to completion on the caller's goroutine.
//
// AppendChild and InsertBefore have move semantics: a child already present
// in the parent is removed first, so a node appears in a parent's child
// sequence at most once. InsertBefore and RemoveChild return
// domain.ErrChildNotFound when the referenced node is not currently a child
// of the parent; the child list is left unchanged in that case.
type Host interface {
	// CreateInstance allocates a host node with a fresh unique identifier,
	// the flattened initial children, and the given payload.
	CreateInstance(typ string, props any, children *domain.WorkNode) *domain.Instance

	// CreateTextInstance allocates a text leaf.
	CreateTextInstance(text string) *domain.Text

	// PrepareUpdate reports whether a commit is required. This backend defers
	// all diffing intelligence to the caller and always reports true.
	PrepareUpdate(inst *domain.Instance, oldProps, newProps any) bool

	// CommitUpdate replaces the instance's payload in place.
	CommitUpdate(inst *domain.Instance, oldProps, newProps any)

	// CommitTextUpdate replaces the text value in place.
	CommitTextUpdate(text *domain.Text, oldValue, newValue string)

	// AppendChild moves or appends child to the tail of parent's children.
	AppendChild(parent *domain.Instance, child domain.Node)

	// InsertBefore moves or inserts child immediately before the reference
	// node within parent's children.
	InsertBefore(parent *domain.Instance, child, before domain.Node) error

	// RemoveChild removes child from parent's children.
	RemoveChild(parent *domain.Instance, child domain.Node) error

	// UpdateContainer replaces the container's entire child sequence with
	// the flattened result of the given work-node tree.
	UpdateContainer(c *domain.Container, children *domain.WorkNode)
}

// Deadline exposes the shrinking time budget handed to deferred callbacks.
// Each query consumes a fixed quantum; the budget never goes negative.
type Deadline interface {
	TimeRemaining() float64
}

// Scheduler is the two-lane callback surface given to the reconciler. Each
// lane holds at most one pending callback; scheduling a new one silently
// discards any previously scheduled, unflushed callback for that lane.
type Scheduler interface {
	ScheduleAnimationCallback(fn func())
	ScheduleDeferredCallback(fn func(Deadline))
}
