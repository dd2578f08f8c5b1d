package perch

import (
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/aretw0/perch/internal/logging"
	"github.com/aretw0/perch/internal/reconciler"
	"github.com/aretw0/perch/internal/runtime"
	"github.com/aretw0/perch/pkg/domain"
	"github.com/aretw0/perch/pkg/ports"
)

// Renderer is the high-level entry point for the perch library. It owns one
// container, the host backend, the scheduler, and the reconciler driving
// them, and provides the flush-driven API test code uses.
type Renderer struct {
	container *domain.Container
	backend   *runtime.Backend
	scheduler *runtime.Scheduler
	rec       ports.Reconciler

	factory     ports.Factory
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	out         io.Writer
	containerID int
	mounted     bool
}

// Option defines a functional option for configuring the Renderer.
type Option func(*Renderer)

// WithLogger sets a custom structured logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks on the backend and the
// scheduler.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Renderer) {
		r.hooks = hooks
	}
}

// WithOutput sets the writer dump reports are emitted to (default Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.out = w
		}
	}
}

// WithFactory injects a custom reconciler, bypassing the built-in one.
func WithFactory(f ports.Factory) Option {
	return func(r *Renderer) {
		if f != nil {
			r.factory = f
		}
	}
}

// WithContainerID sets the numeric identifier of the rendering root.
func WithContainerID(id int) Option {
	return func(r *Renderer) {
		r.containerID = id
	}
}

// New initializes a Renderer. Renderers are independent: each owns its own
// scheduler slots, so several can coexist in one test process.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger:  logging.NewNop(),
		out:     os.Stdout,
		factory: reconciler.Factory,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.container = domain.NewContainer(r.containerID)
	r.backend = runtime.NewBackend(
		runtime.WithLogger(r.logger),
		runtime.WithHooks(r.hooks),
	)
	r.scheduler = runtime.NewScheduler(
		runtime.WithSchedulerLogger(r.logger),
		runtime.WithSchedulerHooks(r.hooks),
	)
	r.rec = r.factory(r.backend, r.scheduler)
	return r
}

// Render mounts the element tree on the first call and updates on later
// calls. Optional callbacks run once the work has been committed. Work is
// scheduled on the current priority's lane; drive it with the flush calls.
func (r *Renderer) Render(el domain.Element, callback ...func()) {
	switch {
	case len(callback) > 0 && callback[0] != nil:
		r.rec.UpdateWithCallback(el, r.container, callback[0])
	case !r.mounted:
		r.rec.Mount(el, r.container)
	default:
		r.rec.Update(el, r.container)
	}
	r.mounted = true
}

// FlushAnimationPri flushes the animation scheduler class once.
func (r *Renderer) FlushAnimationPri() {
	r.scheduler.FlushAnimation()
}

// FlushDeferredPri flushes the deferred scheduler class once. The optional
// timeout bounds the delivered deadline's budget; the default is unbounded.
func (r *Renderer) FlushDeferredPri(timeout ...float64) {
	budget := math.Inf(1)
	if len(timeout) > 0 {
		budget = timeout[0]
	}
	r.scheduler.FlushDeferred(budget)
}

// Flush flushes the animation class once, then the deferred class once.
func (r *Renderer) Flush() {
	r.FlushAnimationPri()
	r.FlushDeferredPri()
}

// PerformAnimationWork runs fn through the reconciler at animation priority.
func (r *Renderer) PerformAnimationWork(fn func()) {
	r.rec.Perform(domain.PriorityAnimation, fn)
}

// PerformWork runs fn through the reconciler at the given priority level.
func (r *Renderer) PerformWork(p domain.Priority, fn func()) {
	r.rec.Perform(p, fn)
}

// Report builds the textual report of the committed tree and the work tree
// without emitting it anywhere.
func (r *Renderer) Report() string {
	return runtime.DumpTree(r.container, r.rec.WorkRoot(r.container))
}

// DumpTree builds the report, emits it to the configured writer in a single
// write, and returns it.
func (r *Renderer) DumpTree() string {
	report := r.Report()
	if _, err := io.WriteString(r.out, report); err != nil {
		r.logger.Error("emit dump", "err", err)
	}
	return report
}

// Container exposes the committed root container for direct assertions.
func (r *Renderer) Container() *domain.Container {
	return r.container
}

// Children returns the container's current committed child sequence.
func (r *Renderer) Children() []domain.Node {
	return r.container.Children
}

// Snapshot projects the committed tree into plain values for assertions.
func (r *Renderer) Snapshot() []domain.NodeSnapshot {
	return r.container.Snapshot()
}
