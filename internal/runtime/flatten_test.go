package runtime_test

import (
	"testing"

	"github.com/aretw0/perch/internal/runtime"
	"github.com/aretw0/perch/pkg/domain"
)

// wrap builds the intermediate-over-leaf shape the reconciler produces: one
// chain node per committed node, each exposing its leaf as output.
func wrap(nodes ...domain.Node) *domain.WorkNode {
	var first, prev *domain.WorkNode
	for _, n := range nodes {
		w := &domain.WorkNode{Output: &domain.WorkNode{Leaf: n}}
		if first == nil {
			first = w
		} else {
			prev.Sibling = w
		}
		prev = w
	}
	return first
}

func TestFlattenAbsent(t *testing.T) {
	if got := runtime.Flatten(nil); len(got) != 0 {
		t.Errorf("expected empty result for absent input, got %d nodes", len(got))
	}
}

func TestFlattenTerminal(t *testing.T) {
	text := domain.NewText("hello")
	got := runtime.Flatten(&domain.WorkNode{Leaf: text})
	if len(got) != 1 || got[0] != domain.Node(text) {
		t.Fatalf("expected [text], got %v", got)
	}
}

func TestFlattenSiblingSubtrees(t *testing.T) {
	a1 := domain.NewInstance(1, "a1", nil, nil)
	a2 := domain.NewInstance(2, "a2", nil, nil)
	b1 := domain.NewInstance(3, "b1", nil, nil)
	c1 := domain.NewInstance(4, "c1", nil, nil)
	c2 := domain.NewInstance(5, "c2", nil, nil)
	c3 := domain.NewInstance(6, "c3", nil, nil)

	// Three siblings whose own subtrees contribute [a1,a2], [b1], [c1,c2,c3].
	sa := &domain.WorkNode{Output: wrap(a1, a2)}
	sb := &domain.WorkNode{Output: wrap(b1)}
	sc := &domain.WorkNode{Output: wrap(c1, c2, c3)}
	sa.Sibling = sb
	sb.Sibling = sc

	got := runtime.Flatten(sa)
	want := []domain.Node{a1, a2, b1, c1, c2, c3}
	if len(got) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFlattenDeepChain(t *testing.T) {
	// Deep output nesting must not exhaust the stack.
	leaf := domain.NewText("bottom")
	node := &domain.WorkNode{Leaf: leaf}
	for i := 0; i < 200000; i++ {
		node = &domain.WorkNode{Output: node}
	}
	got := runtime.Flatten(node)
	if len(got) != 1 || got[0] != domain.Node(leaf) {
		t.Fatalf("expected the single deep leaf, got %d nodes", len(got))
	}
}

func TestFlattenDoesNotMutateInput(t *testing.T) {
	a := domain.NewInstance(1, "a", nil, nil)
	b := domain.NewInstance(2, "b", nil, nil)
	chain := wrap(a, b)
	_ = runtime.Flatten(chain)

	if chain.Sibling == nil || chain.Sibling.Output.Leaf != domain.Node(b) {
		t.Error("flatten must not rewire the input chain")
	}
	if chain.Output.Leaf != domain.Node(a) {
		t.Error("flatten must not rewire output references")
	}
}
