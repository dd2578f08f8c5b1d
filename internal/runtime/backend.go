package runtime

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/perch/internal/logging"
	"github.com/aretw0/perch/pkg/domain"
)

// instanceIDs allocates identifiers for all backends in the process, so ids
// stay unique for the process lifetime even when several renderers coexist.
var instanceIDs atomic.Int64

// Backend implements ports.Host over the in-memory tree model. All state it
// mutates lives in the nodes themselves; the backend carries only its
// logger and hooks, so it is as cheap as the capability table it replaces.
type Backend struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// BackendOption defines a functional option for configuring the Backend.
type BackendOption func(*Backend)

// WithLogger sets a custom structured logger for the backend.
func WithLogger(logger *slog.Logger) BackendOption {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) BackendOption {
	return func(b *Backend) {
		b.hooks = hooks
	}
}

// NewBackend creates a host backend.
func NewBackend(opts ...BackendOption) *Backend {
	b := &Backend{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateInstance allocates a new Instance with a freshly assigned unique id
// and the flattened initial children.
func (b *Backend) CreateInstance(typ string, props any, children *domain.WorkNode) *domain.Instance {
	id := int(instanceIDs.Add(1))
	inst := domain.NewInstance(id, typ, props, Flatten(children))
	b.logger.Debug("create instance", "id", id, "instance_type", typ, "children", len(inst.Children))
	b.instanceEvent(domain.EventCreateInstance, inst)
	return inst
}

// CreateTextInstance allocates a new text leaf.
func (b *Backend) CreateTextInstance(text string) *domain.Text {
	b.logger.Debug("create text", "value", text)
	if b.hooks.OnCreateInstance != nil {
		b.hooks.OnCreateInstance(&domain.InstanceEvent{EventBase: eventBase(domain.EventCreateText)})
	}
	return domain.NewText(text)
}

// PrepareUpdate always reports that a commit is required; the decision is
// deferred to the caller wholesale.
func (b *Backend) PrepareUpdate(inst *domain.Instance, oldProps, newProps any) bool {
	b.logger.Debug("prepare update", "id", inst.ID())
	return true
}

// CommitUpdate replaces the instance's payload in place.
func (b *Backend) CommitUpdate(inst *domain.Instance, oldProps, newProps any) {
	inst.Props = newProps
	b.logger.Debug("commit update", "id", inst.ID())
	b.mutationEvent(domain.EventCommitUpdate, inst, false)
}

// CommitTextUpdate replaces the text value in place.
func (b *Backend) CommitTextUpdate(text *domain.Text, oldValue, newValue string) {
	text.Value = newValue
	b.logger.Debug("commit text", "old", oldValue, "new", newValue)
	b.mutationEvent(domain.EventCommitText, nil, false)
}

// AppendChild moves or appends child to the tail of parent's children. A
// child already present is removed first, so appending is a move and the
// postcondition is: present exactly once, at the last position.
func (b *Backend) AppendChild(parent *domain.Instance, child domain.Node) {
	parent.Children = withoutNode(parent.Children, child)
	parent.Children = append(parent.Children, child)
	b.logger.Debug("append child", "parent", parent.ID())
	b.mutationEvent(domain.EventAppendChild, parent, false)
}

// InsertBefore moves or inserts child immediately before the reference node.
// The reference is validated before anything is touched, so a failure leaves
// the child list unchanged.
func (b *Backend) InsertBefore(parent *domain.Instance, child, before domain.Node) error {
	if indexOfNode(parent.Children, before) < 0 {
		b.mutationEvent(domain.EventInsertBefore, parent, true)
		return fmt.Errorf("insert before: reference %w", domain.ErrChildNotFound)
	}
	if child == before {
		// Already immediately before itself; nothing to move.
		return nil
	}
	children := withoutNode(parent.Children, child)
	// Recompute: removing child may have shifted the reference position.
	idx := indexOfNode(children, before)
	children = append(children, nil)
	copy(children[idx+1:], children[idx:])
	children[idx] = child
	parent.Children = children
	b.logger.Debug("insert before", "parent", parent.ID(), "index", idx)
	b.mutationEvent(domain.EventInsertBefore, parent, false)
	return nil
}

// RemoveChild removes child from parent's children.
func (b *Backend) RemoveChild(parent *domain.Instance, child domain.Node) error {
	idx := indexOfNode(parent.Children, child)
	if idx < 0 {
		b.mutationEvent(domain.EventRemoveChild, parent, true)
		return fmt.Errorf("remove child: %w", domain.ErrChildNotFound)
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	b.logger.Debug("remove child", "parent", parent.ID(), "index", idx)
	b.mutationEvent(domain.EventRemoveChild, parent, false)
	return nil
}

// UpdateContainer replaces the container's entire child sequence with the
// flattened work-node tree. A wholesale replace, not an incremental diff.
func (b *Backend) UpdateContainer(c *domain.Container, children *domain.WorkNode) {
	c.Children = Flatten(children)
	b.logger.Debug("update container", "root", c.RootID, "children", len(c.Children))
	b.mutationEvent(domain.EventReplaceRoot, nil, false)
}

// indexOfNode locates child by pointer identity, never structural equality.
func indexOfNode(children []domain.Node, child domain.Node) int {
	for i, n := range children {
		if n == child {
			return i
		}
	}
	return -1
}

func withoutNode(children []domain.Node, child domain.Node) []domain.Node {
	idx := indexOfNode(children, child)
	if idx < 0 {
		return children
	}
	return append(children[:idx], children[idx+1:]...)
}

func eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t}
}

func (b *Backend) instanceEvent(t domain.EventType, inst *domain.Instance) {
	if b.hooks.OnCreateInstance == nil {
		return
	}
	b.hooks.OnCreateInstance(&domain.InstanceEvent{
		EventBase:    eventBase(t),
		InstanceID:   inst.ID(),
		InstanceType: inst.Type,
	})
}

func (b *Backend) mutationEvent(t domain.EventType, parent *domain.Instance, failed bool) {
	if b.hooks.OnMutation == nil {
		return
	}
	ev := &domain.MutationEvent{EventBase: eventBase(t), Failed: failed}
	if parent != nil {
		ev.ParentID = parent.ID()
	}
	b.hooks.OnMutation(ev)
}
