package domain

// WorkNode is one link in the reconciler's internal work tree.
//
// The representation is an explicit recursive variant: a nil *WorkNode means
// "absent"; a node with a non-nil Leaf is terminal and contributes that
// committed node directly; any other node is intermediate and contributes
// its Output subtree followed by its Sibling chain.
//
// Child, Priority, PendingProps, Updates and InProgress are bookkeeping the
// dumper renders; the flattener reads only Leaf, Output and Sibling.
type WorkNode struct {
	// Leaf marks a terminal node. When non-nil, all other references are
	// ignored by the flattener.
	Leaf Node

	// Type is the element type that produced this node, or "" for the root.
	Type string

	// Priority is the work priority this node was produced at.
	Priority Priority

	// PendingProps is set while the node has unprocessed pending properties.
	PendingProps bool

	// Updates is the pending-update queue, oldest first.
	Updates []Update

	// Output is the first node of this node's own subtree.
	Output *WorkNode

	// Sibling is the next node at the same level, forming an implicit list.
	Sibling *WorkNode

	// Child is the first structural child, used for work-tree traversal.
	Child *WorkNode

	// InProgress is an uncommitted alternate version of this node's subtree,
	// present only while work has been interrupted before commit.
	InProgress *WorkNode
}

// Terminal reports whether the node contributes a committed leaf directly.
func (w *WorkNode) Terminal() bool {
	return w != nil && w.Leaf != nil
}

// Update is one entry of a work node's pending-update queue.
type Update struct {
	// Replace marks a full-replace update rather than a partial merge.
	Replace bool

	// Force marks an update that must not be skipped.
	Force bool

	// State is the partial state payload carried by the update.
	State any

	// Callback, when non-nil, runs after the update has been committed.
	Callback func()
}
