/*
Package ports defines the capability contracts between the perch host core
and the external reconciler.

These interfaces decouple the reconciler from the host's internal
representations: the reconciler depends only on the Host mutation surface
and the Scheduler hook surface, never on how the backend stores the tree.

# Key Interfaces

  - Host: the tree mutation capability set handed to the reconciler.
  - Scheduler: the two-class callback scheduling hooks.
  - Deadline: the shrinking time budget delivered to deferred callbacks.
  - Reconciler / Factory: the entry points this core consumes back.
*/
package ports
