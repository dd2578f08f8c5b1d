/*
Package domain contains the core entities of the perch host tree.

It defines the committed tree (Container, Instance, Text), the reconciler's
work-tree representation (WorkNode, Update), the input values used to
describe trees (Element), and the priority enumeration. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Container: the root handle owning the top-level child sequence.
  - Instance: a mutable host node with identity, type tag, payload, children.
  - Text: a mutable leaf node holding a string.
  - WorkNode: one link of the reconciler's internal work tree, consumed by
    the flattener and the dumper.
  - Element: a plain value describing a tree to render.
*/
package domain
