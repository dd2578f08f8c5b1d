/*
Package perch is a deterministic host-environment stand-in for exercising
tree-reconciliation engines without a real rendering surface.

It applies the mutation instructions a reconciler emits to an in-memory tree
of opaque instances, so tests can observe reconciliation outcomes
deterministically: nothing executes spontaneously, and progress is driven
entirely by explicit flush calls.

# Concept

A Renderer owns one Container (the committed tree root), a host backend
implementing the mutation capability contract, and a two-class callback
scheduler simulating deferred and animation work. The reconciler — the
built-in reference one, or any implementation of the ports contracts — is
handed the capability table and drives the tree; test code drives the
scheduler and inspects state through the dumper or directly.

# Key Features

  - Deterministic Execution: single-threaded, synchronous, flush-driven.
  - Hexagonal Architecture: the reconciler depends only on the ports
    contracts, never on the host's internal representations.
  - Two-Class Scheduling: single-slot "animation" and "deferred" lanes with
    cancel-by-overwrite semantics and a shrinking deferred time budget.
  - Introspection: a byte-deterministic dump of both the committed tree and
    the reconciler's internal work tree.

# Usage

	package main

	import (
		"fmt"

		"github.com/aretw0/perch"
		"github.com/aretw0/perch/pkg/domain"
	)

	func main() {
		r := perch.New()

		r.Render(domain.NewElement("div", nil,
			domain.NewElement("span", nil, domain.NewTextElement("hello")),
		))
		r.Flush()

		fmt.Print(r.DumpTree())
	}
*/
package perch
