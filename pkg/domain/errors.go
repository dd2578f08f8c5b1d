package domain

import "errors"

// ErrChildNotFound is returned when a mutation references a child that is
// not currently present in the parent's child sequence. The child list is
// left unchanged when this is returned.
var ErrChildNotFound = errors.New("child does not exist")
