package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	data := []byte(`
root:
  type: div
  props:
    class: main
    count: 2
  children:
    - type: span
      children: ["hello"]
    - plain tail
`)

	el, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "div", el.Type)
	assert.Equal(t, "main", el.Props["class"])
	assert.EqualValues(t, 2, el.Props["count"])
	require.Len(t, el.Children, 2)

	span := el.Children[0]
	assert.Equal(t, "span", span.Type)
	require.Len(t, span.Children, 1)
	assert.True(t, span.Children[0].IsText())
	assert.Equal(t, "hello", span.Children[0].Text)

	assert.True(t, el.Children[1].IsText())
	assert.Equal(t, "plain tail", el.Children[1].Text)
}

func TestParseFixtureErrors(t *testing.T) {
	_, err := Parse([]byte(`{}`))
	assert.Error(t, err, "missing root must fail")

	_, err = Parse([]byte("root:\n  props: {a: 1}\n"))
	assert.Error(t, err, "node without type must fail")

	_, err = Parse([]byte(":::"))
	assert.Error(t, err, "invalid yaml must fail")
}
