package domain

// Node is a committed member of the host tree. Only *Instance and *Text
// implement it; containment checks compare Node values by pointer identity,
// never by structural equality.
type Node interface {
	hostNode()
}

// Container is the root handle for one rendering target. It owns the
// authoritative top-level child sequence.
type Container struct {
	RootID   int
	Children []Node
}

// NewContainer creates an empty container for the given root id.
func NewContainer(rootID int) *Container {
	return &Container{RootID: rootID}
}

// Instance is a host node. The identifier is assigned once at creation and
// never changes; it is kept unexported so structural comparisons and printed
// payloads in tests do not depend on allocation order. Use ID() to read it.
type Instance struct {
	id int

	Type     string
	Props    any
	Children []Node
}

// NewInstance builds an Instance with an already-assigned identifier.
// Identifier allocation belongs to the host backend, not to the entity.
func NewInstance(id int, typ string, props any, children []Node) *Instance {
	return &Instance{id: id, Type: typ, Props: props, Children: children}
}

// ID returns the stable identifier assigned at creation.
func (i *Instance) ID() int { return i.id }

func (*Instance) hostNode() {}

// Text is a leaf node holding a string value, mutable in place.
type Text struct {
	Value string
}

// NewText creates a text leaf.
func NewText(value string) *Text {
	return &Text{Value: value}
}

func (*Text) hostNode() {}

// NodeSnapshot is the public projection of a committed node, safe for
// assertions and JSON encoding. Kind is "instance" or "text".
type NodeSnapshot struct {
	Kind     string         `json:"kind"`
	Type     string         `json:"type,omitempty"`
	ID       int            `json:"id,omitempty"`
	Text     string         `json:"text,omitempty"`
	Props    any            `json:"props,omitempty"`
	Children []NodeSnapshot `json:"children,omitempty"`
}

// Snapshot projects the container's committed children into plain values.
func (c *Container) Snapshot() []NodeSnapshot {
	return snapshotNodes(c.Children)
}

func snapshotNodes(nodes []Node) []NodeSnapshot {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]NodeSnapshot, 0, len(nodes))
	for _, n := range nodes {
		switch x := n.(type) {
		case *Instance:
			out = append(out, NodeSnapshot{
				Kind:     "instance",
				Type:     x.Type,
				ID:       x.id,
				Props:    x.Props,
				Children: snapshotNodes(x.Children),
			})
		case *Text:
			out = append(out, NodeSnapshot{Kind: "text", Text: x.Value})
		}
	}
	return out
}
