package ports

import (
	"testing"

	"github.com/aretw0/perch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainOf links committed nodes into a work chain the way the reconciler
// does: one intermediate node per entry, each exposing its leaf as output.
func chainOf(nodes ...domain.Node) *domain.WorkNode {
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

// RunHostContract runs a suite of tests to verify that a Host implementation
// adheres to the defined interface contract.
func RunHostContract(t *testing.T, host Host) {
	t.Run("Create Ids Monotonic", func(t *testing.T) {
		prev := -1
		for i := 0; i < 5; i++ {
			inst := host.CreateInstance("div", nil, nil)
			require.NotNil(t, inst)
			assert.Greater(t, inst.ID(), prev, "ids must be strictly increasing")
			prev = inst.ID()
		}
	})

	t.Run("PrepareUpdate Always True", func(t *testing.T) {
		inst := host.CreateInstance("div", map[string]any{"a": 1}, nil)
		assert.True(t, host.PrepareUpdate(inst, inst.Props, inst.Props),
			"PrepareUpdate must never suppress an update, even for identical payloads")
	})

	t.Run("CommitUpdate In Place", func(t *testing.T) {
		inst := host.CreateInstance("div", map[string]any{"a": 1}, nil)
		id := inst.ID()
		host.CommitUpdate(inst, inst.Props, map[string]any{"a": 2})
		assert.Equal(t, map[string]any{"a": 2}, inst.Props)
		assert.Equal(t, id, inst.ID(), "identifier must not change on update")
	})

	t.Run("CommitTextUpdate In Place", func(t *testing.T) {
		text := host.CreateTextInstance("before")
		host.CommitTextUpdate(text, "before", "after")
		assert.Equal(t, "after", text.Value)
	})

	t.Run("AppendChild Move Semantics", func(t *testing.T) {
		parent := host.CreateInstance("list", nil, nil)
		a := host.CreateInstance("item", nil, nil)
		b := host.CreateInstance("item", nil, nil)
		host.AppendChild(parent, a)
		host.AppendChild(parent, b)
		require.Equal(t, []domain.Node{a, b}, parent.Children)

		// Appending an existing child is a move to the tail, not a duplicate.
		host.AppendChild(parent, a)
		require.Equal(t, []domain.Node{b, a}, parent.Children)

		// Repeating the move is idempotent in membership and position.
		host.AppendChild(parent, a)
		require.Equal(t, []domain.Node{b, a}, parent.Children)
	})

	t.Run("InsertBefore Ordering", func(t *testing.T) {
		parent := host.CreateInstance("list", nil, nil)
		a := host.CreateInstance("item", nil, nil)
		b := host.CreateInstance("item", nil, nil)
		c := host.CreateInstance("item", nil, nil)
		host.AppendChild(parent, a)
		host.AppendChild(parent, b)
		host.AppendChild(parent, c)

		// New node lands immediately before the reference.
		x := host.CreateInstance("item", nil, nil)
		require.NoError(t, host.InsertBefore(parent, x, b))
		assert.Equal(t, []domain.Node{a, x, b, c}, parent.Children)

		// Moving an existing child keeps all other relative orderings.
		require.NoError(t, host.InsertBefore(parent, c, a))
		assert.Equal(t, []domain.Node{c, a, x, b}, parent.Children)
	})

	t.Run("InsertBefore Missing Reference", func(t *testing.T) {
		parent := host.CreateInstance("list", nil, nil)
		a := host.CreateInstance("item", nil, nil)
		host.AppendChild(parent, a)
		stranger := host.CreateInstance("item", nil, nil)

		err := host.InsertBefore(parent, a, stranger)
		assert.ErrorIs(t, err, domain.ErrChildNotFound)
		assert.Equal(t, []domain.Node{a}, parent.Children, "failed insert must not mutate the child list")
	})

	t.Run("RemoveChild", func(t *testing.T) {
		parent := host.CreateInstance("list", nil, nil)
		a := host.CreateInstance("item", nil, nil)
		b := host.CreateInstance("item", nil, nil)
		host.AppendChild(parent, a)
		host.AppendChild(parent, b)

		require.NoError(t, host.RemoveChild(parent, a))
		assert.Equal(t, []domain.Node{b}, parent.Children)

		err := host.RemoveChild(parent, a)
		assert.ErrorIs(t, err, domain.ErrChildNotFound)
		assert.Equal(t, []domain.Node{b}, parent.Children, "failed remove must not mutate the child list")
	})

	t.Run("UpdateContainer Wholesale", func(t *testing.T) {
		c := domain.NewContainer(0)
		a := host.CreateInstance("div", nil, nil)
		host.UpdateContainer(c, chainOf(a))
		require.Equal(t, []domain.Node{a}, c.Children)

		// The replacement is wholesale, not an incremental diff.
		b := host.CreateInstance("span", nil, nil)
		text := host.CreateTextInstance("tail")
		host.UpdateContainer(c, chainOf(b, text))
		require.Equal(t, []domain.Node{b, text}, c.Children)

		host.UpdateContainer(c, nil)
		assert.Empty(t, c.Children)
	})
}
