package domain

// Element is a plain value describing a tree to render. A zero Type marks a
// text element carrying Text; otherwise the element describes an Instance
// with an opaque props map and ordered children.
type Element struct {
	Type     string
	Props    map[string]any
	Children []Element
	Text     string
}

// NewElement describes an instance element.
func NewElement(typ string, props map[string]any, children ...Element) Element {
	return Element{Type: typ, Props: props, Children: children}
}

// NewTextElement describes a text leaf.
func NewTextElement(text string) Element {
	return Element{Text: text}
}

// IsText reports whether the element describes a text leaf.
func (e Element) IsText() bool { return e.Type == "" }
