package runtime

import "github.com/aretw0/perch/pkg/domain"

// Flatten linearizes a work-node chain into the ordered child list implied
// by its output/sibling references: a terminal node is appended directly, an
// intermediate node contributes its output subtree first and then advances
// to its sibling. No filtering, no deduplication, no mutation of the input.
//
// The walk uses an explicit stack so deep trees cannot exhaust the
// goroutine stack.
func Flatten(w *domain.WorkNode) []domain.Node {
	if w == nil {
		return nil
	}
	var out []domain.Node
	stack := []*domain.WorkNode{w}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.Terminal() {
			out = append(out, n.Leaf)
			continue
		}
		// Sibling below output: output pops first, preserving document order.
		if n.Sibling != nil {
			stack = append(stack, n.Sibling)
		}
		if n.Output != nil {
			stack = append(stack, n.Output)
		}
	}
	return out
}
