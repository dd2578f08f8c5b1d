// Package reconciler is a minimal reference reconciler driving the Host
// capability contract. It turns Element descriptions into host mutations:
// wholesale container replaces on mount, positional in-place reconciliation
// on update, and interruptible deferred work under a shrinking deadline.
package reconciler

import (
	"log/slog"

	"github.com/aretw0/perch/internal/logging"
	"github.com/aretw0/perch/pkg/domain"
	"github.com/aretw0/perch/pkg/ports"
)

// Reconciler implements ports.Reconciler.
type Reconciler struct {
	host     ports.Host
	sched    ports.Scheduler
	logger   *slog.Logger
	priority domain.Priority
	roots    map[*domain.Container]*rootState
}

// rootState tracks one container's work tree and any interrupted progress.
type rootState struct {
	container *domain.Container
	node      *domain.WorkNode
	element   domain.Element // last committed element
	mounted   bool

	// Resume state for interrupted deferred rebuilds.
	pending   *domain.Element
	progress  *domain.WorkNode
	tail      *domain.WorkNode
	nextChild int
	callbacks []func()
}

// Option defines a functional option for configuring the Reconciler.
type Option func(*Reconciler)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a reconciler over the given host and scheduling hooks.
func New(host ports.Host, sched ports.Scheduler, opts ...Option) *Reconciler {
	r := &Reconciler{
		host:     host,
		sched:    sched,
		logger:   logging.NewNop(),
		priority: domain.PriorityDeferred,
		roots:    make(map[*domain.Container]*rootState),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Factory adapts New to the ports.Factory shape.
func Factory(host ports.Host, sched ports.Scheduler) ports.Reconciler {
	return New(host, sched)
}

var _ ports.Reconciler = (*Reconciler)(nil)

// Mount renders an element tree into a container for the first time.
func (r *Reconciler) Mount(el domain.Element, c *domain.Container) {
	r.render(el, c, nil)
}

// Update re-renders an already-mounted container.
func (r *Reconciler) Update(el domain.Element, c *domain.Container) {
	r.render(el, c, nil)
}

// UpdateWithCallback re-renders and runs fn once the work has committed.
func (r *Reconciler) UpdateWithCallback(el domain.Element, c *domain.Container, fn func()) {
	r.render(el, c, fn)
}

// Perform runs fn with the given work priority. Renders issued inside fn are
// scheduled on that priority's lane.
func (r *Reconciler) Perform(p domain.Priority, fn func()) {
	prev := r.priority
	r.priority = p
	defer func() { r.priority = prev }()
	fn()
}

// WorkRoot returns the container's current root work node, or nil if nothing
// has been rendered into it yet.
func (r *Reconciler) WorkRoot(c *domain.Container) *domain.WorkNode {
	rs, ok := r.roots[c]
	if !ok {
		return nil
	}
	return rs.node
}

// render enqueues a replace update on the root work node and schedules the
// work on the lane matching the current priority. Synchronous priority
// commits before returning.
func (r *Reconciler) render(el domain.Element, c *domain.Container, cb func()) {
	rs, ok := r.roots[c]
	if !ok {
		rs = &rootState{container: c, node: &domain.WorkNode{Priority: domain.PriorityNoWork}}
		r.roots[c] = rs
	}
	rs.node.Updates = append(rs.node.Updates, domain.Update{Replace: true, State: el, Callback: cb})
	rs.node.PendingProps = true
	rs.node.Priority = r.priority
	r.logger.Debug("render scheduled", "root", c.RootID, "priority", r.priority.String())

	switch r.priority {
	case domain.PrioritySync:
		r.performWork(rs, nil)
	case domain.PriorityAnimation:
		r.sched.ScheduleAnimationCallback(func() { r.performWork(rs, nil) })
	default:
		r.sched.ScheduleDeferredCallback(func(d ports.Deadline) { r.performWork(rs, d) })
	}
}

// performWork consumes the root's update queue and drives the tree to the
// latest requested element. A nil deadline means the work cannot be
// interrupted.
func (r *Reconciler) performWork(rs *rootState, d ports.Deadline) {
	if len(rs.node.Updates) > 0 {
		// Only the last replace matters, but every processed callback runs.
		for _, u := range rs.node.Updates {
			if u.Replace {
				el := u.State.(domain.Element)
				rs.pending = &el
			}
			if u.Callback != nil {
				rs.callbacks = append(rs.callbacks, u.Callback)
			}
		}
		rs.node.Updates = nil
		// A newer element supersedes any interrupted progress.
		rs.progress, rs.tail, rs.nextChild = nil, nil, 0
	}
	if rs.pending == nil {
		return
	}
	el := *rs.pending

	// Built work nodes carry the priority the render was scheduled at, not
	// whatever priority is current when the flush happens to run.
	prev := r.priority
	r.priority = rs.node.Priority
	defer func() { r.priority = prev }()

	if rs.mounted && r.canUpdateInPlace(rs, el) {
		r.updateInPlace(rs, el)
	} else if !r.rebuild(rs, el, d) {
		return // interrupted; progress parked, work rescheduled
	}

	rs.element = el
	rs.mounted = true
	rs.pending = nil
	rs.node.PendingProps = false
	rs.node.InProgress = nil
	rs.node.Priority = domain.PriorityNoWork
	r.logger.Debug("work committed", "root", rs.container.RootID)

	callbacks := rs.callbacks
	rs.callbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

// canUpdateInPlace reports whether the committed root can absorb the new
// element without being replaced.
func (r *Reconciler) canUpdateInPlace(rs *rootState, el domain.Element) bool {
	if len(rs.container.Children) != 1 {
		return false
	}
	if el.IsText() {
		return rs.element.IsText()
	}
	return !rs.element.IsText() && rs.element.Type == el.Type
}

// rebuild replaces the container contents wholesale. Under a deadline it
// builds one top-level child per budget check; on exhaustion it parks the
// partial chain as the root's in-progress alternate and reschedules itself.
// Returns false when interrupted.
func (r *Reconciler) rebuild(rs *rootState, el domain.Element, d ports.Deadline) bool {
	if el.IsText() {
		text := r.host.CreateTextInstance(el.Text)
		work := &domain.WorkNode{Type: "#text", Priority: r.priority, Output: &domain.WorkNode{Leaf: text}}
		r.commitChain(rs, work)
		return true
	}

	for rs.nextChild < len(el.Children) {
		if d != nil && d.TimeRemaining() <= 0 {
			rs.node.InProgress = rs.progress
			rs.node.PendingProps = true
			r.logger.Debug("work interrupted", "root", rs.container.RootID, "built", rs.nextChild)
			r.sched.ScheduleDeferredCallback(func(next ports.Deadline) { r.performWork(rs, next) })
			return false
		}
		w := r.buildWork(el.Children[rs.nextChild])
		if rs.progress == nil {
			rs.progress = w
		} else {
			rs.tail.Sibling = w
		}
		rs.tail = w
		rs.nextChild++
	}

	inst := r.host.CreateInstance(el.Type, elementProps(el), rs.progress)
	work := &domain.WorkNode{
		Type:     el.Type,
		Priority: r.priority,
		Child:    rs.progress,
		Output:   &domain.WorkNode{Leaf: inst},
	}
	rs.progress, rs.tail, rs.nextChild = nil, nil, 0
	r.commitChain(rs, work)
	return true
}

func (r *Reconciler) commitChain(rs *rootState, chain *domain.WorkNode) {
	r.host.UpdateContainer(rs.container, chain)
	rs.node.Child = chain
	rs.node.Output = chain
}

// updateInPlace mutates the committed root instead of replacing it.
func (r *Reconciler) updateInPlace(rs *rootState, el domain.Element) {
	if el.IsText() {
		text := rs.container.Children[0].(*domain.Text)
		if text.Value != el.Text {
			r.host.CommitTextUpdate(text, text.Value, el.Text)
		}
		return
	}
	root := rs.container.Children[0].(*domain.Instance)
	if r.host.PrepareUpdate(root, root.Props, elementProps(el)) {
		r.host.CommitUpdate(root, root.Props, elementProps(el))
	}
	if err := r.reconcileChildren(root, el.Children); err != nil {
		// The backend only fails on misuse of its own preconditions, which
		// this reconciler never violates; surface loudly if it ever happens.
		r.logger.Error("reconcile failed", "err", err)
	}
	rs.node.Child = r.mirrorNodes(rs.container.Children)
	rs.node.Output = rs.node.Child
}

// reconcileChildren walks old and new children positionally: matching kinds
// update in place, mismatches are replaced via insert-before plus remove,
// growth appends and shrinkage removes.
func (r *Reconciler) reconcileChildren(parent *domain.Instance, els []domain.Element) error {
	existing := make([]domain.Node, len(parent.Children))
	copy(existing, parent.Children)

	for i, el := range els {
		if i >= len(existing) {
			r.host.AppendChild(parent, r.materialize(el))
			continue
		}
		old := existing[i]
		if text, ok := old.(*domain.Text); ok && el.IsText() {
			if text.Value != el.Text {
				r.host.CommitTextUpdate(text, text.Value, el.Text)
			}
			continue
		}
		if inst, ok := old.(*domain.Instance); ok && !el.IsText() && inst.Type == el.Type {
			if r.host.PrepareUpdate(inst, inst.Props, elementProps(el)) {
				r.host.CommitUpdate(inst, inst.Props, elementProps(el))
			}
			if err := r.reconcileChildren(inst, el.Children); err != nil {
				return err
			}
			continue
		}
		// Kind or type mismatch: replace in position.
		fresh := r.materialize(el)
		if err := r.host.InsertBefore(parent, fresh, old); err != nil {
			return err
		}
		if err := r.host.RemoveChild(parent, old); err != nil {
			return err
		}
	}

	for _, old := range existing[min(len(els), len(existing)):] {
		if err := r.host.RemoveChild(parent, old); err != nil {
			return err
		}
	}
	return nil
}

// buildWork creates the committed nodes for an element and wraps them in the
// work-chain shape the flattener consumes.
func (r *Reconciler) buildWork(el domain.Element) *domain.WorkNode {
	if el.IsText() {
		text := r.host.CreateTextInstance(el.Text)
		return &domain.WorkNode{Type: "#text", Priority: r.priority, Output: &domain.WorkNode{Leaf: text}}
	}
	var first, prev *domain.WorkNode
	for _, child := range el.Children {
		w := r.buildWork(child)
		if first == nil {
			first = w
		} else {
			prev.Sibling = w
		}
		prev = w
	}
	inst := r.host.CreateInstance(el.Type, elementProps(el), first)
	return &domain.WorkNode{
		Type:     el.Type,
		Priority: r.priority,
		Child:    first,
		Output:   &domain.WorkNode{Leaf: inst},
	}
}

// materialize creates just the committed node for an element subtree.
func (r *Reconciler) materialize(el domain.Element) domain.Node {
	if el.IsText() {
		return r.host.CreateTextInstance(el.Text)
	}
	var chain *domain.WorkNode
	var prev *domain.WorkNode
	for _, child := range el.Children {
		w := r.buildWork(child)
		if chain == nil {
			chain = w
		} else {
			prev.Sibling = w
		}
		prev = w
	}
	return r.host.CreateInstance(el.Type, elementProps(el), chain)
}

// mirrorNodes rebuilds the work chain reflecting the committed children, so
// the dumped work tree matches the tree after in-place reconciliation.
func (r *Reconciler) mirrorNodes(nodes []domain.Node) *domain.WorkNode {
	var first, prev *domain.WorkNode
	for _, n := range nodes {
		var w *domain.WorkNode
		switch x := n.(type) {
		case *domain.Text:
			w = &domain.WorkNode{Type: "#text", Priority: r.priority, Output: &domain.WorkNode{Leaf: x}}
		case *domain.Instance:
			w = &domain.WorkNode{
				Type:     x.Type,
				Priority: r.priority,
				Child:    r.mirrorNodes(x.Children),
				Output:   &domain.WorkNode{Leaf: x},
			}
		}
		if first == nil {
			first = w
		} else {
			prev.Sibling = w
		}
		prev = w
	}
	return first
}

func elementProps(el domain.Element) any {
	if el.Props == nil {
		return nil
	}
	return el.Props
}
