package perch_test

import (
	"fmt"
	"io"

	"github.com/aretw0/perch"
	"github.com/aretw0/perch/pkg/domain"
)

// ExampleNew demonstrates the flush-driven render cycle: nothing commits
// until the scheduler is driven explicitly.
func ExampleNew() {
	r := perch.New(perch.WithOutput(io.Discard))

	r.Render(domain.NewElement("div", nil,
		domain.NewElement("span", nil, domain.NewTextElement("hello")),
	))
	fmt.Println("before flush:", len(r.Children()))

	r.Flush()
	fmt.Println("after flush:", len(r.Children()))

	root := r.Children()[0].(*domain.Instance)
	fmt.Println("root type:", root.Type)

	// Output:
	// before flush: 0
	// after flush: 1
	// root type: div
}

// ExampleRenderer_PerformAnimationWork shows the two scheduler classes:
// work scheduled at animation priority ignores deferred flushes.
func ExampleRenderer_PerformAnimationWork() {
	r := perch.New(perch.WithOutput(io.Discard))

	r.PerformAnimationWork(func() {
		r.Render(domain.NewTextElement("animated"))
	})

	r.FlushDeferredPri()
	fmt.Println("after deferred flush:", len(r.Children()))

	r.FlushAnimationPri()
	fmt.Println("after animation flush:", len(r.Children()))

	// Output:
	// after deferred flush: 0
	// after animation flush: 1
}
