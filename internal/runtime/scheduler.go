package runtime

import (
	"log/slog"
	"math"

	"github.com/aretw0/perch/internal/logging"
	"github.com/aretw0/perch/pkg/domain"
	"github.com/aretw0/perch/pkg/ports"
)

// Scheduler simulates deferred and animation-class work with two single
// callback slots. Scheduling overwrites the slot; flushing clears the slot
// before invoking, so a callback rescheduling itself stays pending for the
// next flush. The slots are fields of the scheduler, not package state, so
// independent renderers never interfere.
type Scheduler struct {
	animation func()
	deferred  func(ports.Deadline)
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// SchedulerOption defines a functional option for configuring the Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets a custom structured logger for the scheduler.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSchedulerHooks registers observability hooks.
func WithSchedulerHooks(hooks domain.LifecycleHooks) SchedulerOption {
	return func(s *Scheduler) {
		s.hooks = hooks
	}
}

// NewScheduler creates a scheduler with empty slots.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleAnimationCallback stores fn in the animation slot, silently
// discarding any previously scheduled, unflushed callback.
func (s *Scheduler) ScheduleAnimationCallback(fn func()) {
	s.scheduleEvent(domain.ClassAnimation, s.animation != nil)
	s.animation = fn
}

// ScheduleDeferredCallback stores fn in the deferred slot, silently
// discarding any previously scheduled, unflushed callback.
func (s *Scheduler) ScheduleDeferredCallback(fn func(ports.Deadline)) {
	s.scheduleEvent(domain.ClassDeferred, s.deferred != nil)
	s.deferred = fn
}

// FlushAnimation invokes the pending animation callback, if any. The slot is
// cleared before the callback runs.
func (s *Scheduler) FlushAnimation() {
	cb := s.animation
	if cb == nil {
		return
	}
	s.animation = nil
	s.flushEvent(domain.ClassAnimation)
	cb()
}

// FlushDeferred invokes the pending deferred callback, if any, handing it a
// deadline that starts at timeout and shrinks by a fixed quantum per query.
func (s *Scheduler) FlushDeferred(timeout float64) {
	cb := s.deferred
	if cb == nil {
		return
	}
	s.deferred = nil
	s.flushEvent(domain.ClassDeferred)
	cb(&deadline{remaining: timeout})
}

// FlushAll flushes the animation class once, then the deferred class once
// with an unbounded budget. A single pass, not a drain loop: callbacks
// scheduled during the pass stay pending for the next flush.
func (s *Scheduler) FlushAll() {
	s.FlushAnimation()
	s.FlushDeferred(math.Inf(1))
}

func (s *Scheduler) scheduleEvent(class string, discarded bool) {
	if discarded {
		s.logger.Debug("discarding pending callback", "class", class)
	}
	if s.hooks.OnSchedule == nil {
		return
	}
	s.hooks.OnSchedule(&domain.SchedulerEvent{
		EventBase: eventBase(domain.EventSchedule),
		Class:     class,
		Discarded: discarded,
	})
}

func (s *Scheduler) flushEvent(class string) {
	s.logger.Debug("flush", "class", class)
	if s.hooks.OnFlush == nil {
		return
	}
	s.hooks.OnFlush(&domain.SchedulerEvent{
		EventBase: eventBase(domain.EventFlush),
		Class:     class,
	})
}

// deadline implements ports.Deadline. Each query consumes one quantum of the
// remaining budget, floored at zero, simulating successive interruption
// checks within one callback's execution. An unbounded budget (math.Inf)
// never shrinks.
type deadline struct {
	remaining float64
}

func (d *deadline) TimeRemaining() float64 {
	d.remaining = math.Max(0, d.remaining-domain.DeadlineQuantum)
	return d.remaining
}
