// Package dto decodes on-disk tree fixtures into domain Elements.
//
// A fixture is a YAML document of the form:
//
//	root:
//	  type: div
//	  props: {class: main}
//	  children:
//	    - type: span
//	      children: ["hello"]
//	    - a bare string is a text leaf
package dto

import (
	"fmt"
	"os"

	"github.com/aretw0/perch/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	Root any `yaml:"root"`
}

// fixtureNode uses "mapstructure" tags so the generic YAML mapping decodes
// into a typed node regardless of key order.
type fixtureNode struct {
	Type     string         `mapstructure:"type"`
	Props    map[string]any `mapstructure:"props"`
	Children []any          `mapstructure:"children"`
}

// Parse decodes a fixture document into the element tree it describes.
func Parse(data []byte) (domain.Element, error) {
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return domain.Element{}, fmt.Errorf("parse fixture: %w", err)
	}
	if fx.Root == nil {
		return domain.Element{}, fmt.Errorf("fixture has no root node")
	}
	return decodeNode(fx.Root)
}

// Load reads and parses a fixture file.
func Load(path string) (domain.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Element{}, fmt.Errorf("load fixture: %w", err)
	}
	return Parse(data)
}

func decodeNode(v any) (domain.Element, error) {
	if s, ok := v.(string); ok {
		return domain.NewTextElement(s), nil
	}

	var node fixtureNode
	if err := mapstructure.Decode(v, &node); err != nil {
		return domain.Element{}, fmt.Errorf("decode fixture node: %w", err)
	}
	if node.Type == "" {
		return domain.Element{}, fmt.Errorf("fixture node missing type: %v", v)
	}

	children := make([]domain.Element, 0, len(node.Children))
	for _, c := range node.Children {
		child, err := decodeNode(c)
		if err != nil {
			return domain.Element{}, err
		}
		children = append(children, child)
	}
	return domain.Element{Type: node.Type, Props: node.Props, Children: children}, nil
}
