package ports

import "github.com/aretw0/perch/pkg/domain"

// Reconciler is the external collaborator that turns element descriptions
// into Host mutations. The host core consumes it only through these entry
// points.
type Reconciler interface {
	// Mount renders an element tree into a container for the first time.
	Mount(el domain.Element, c *domain.Container)

	// Update re-renders an already-mounted container.
	Update(el domain.Element, c *domain.Container)

	// UpdateWithCallback behaves like Update and runs fn after the work has
	// been committed.
	UpdateWithCallback(el domain.Element, c *domain.Container, fn func())

	// Perform runs fn with the given work priority; renders issued inside fn
	// are scheduled on that priority's lane.
	Perform(p domain.Priority, fn func())

	// WorkRoot returns the current root work node for the container, or nil
	// if nothing has been rendered yet. Read-only access for introspection.
	WorkRoot(c *domain.Container) *domain.WorkNode
}

// Factory builds a Reconciler from the host capability table and the
// scheduling hooks.
type Factory func(host Host, sched Scheduler) Reconciler
