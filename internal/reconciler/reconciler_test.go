package reconciler_test

import (
	"math"
	"testing"

	"github.com/aretw0/perch/internal/reconciler"
	"github.com/aretw0/perch/internal/runtime"
	"github.com/aretw0/perch/pkg/domain"
)

func newFixture() (*reconciler.Reconciler, *runtime.Scheduler, *domain.Container) {
	sched := runtime.NewScheduler()
	rec := reconciler.New(runtime.NewBackend(), sched)
	return rec, sched, domain.NewContainer(0)
}

func TestMountCommitsOnFlush(t *testing.T) {
	rec, sched, c := newFixture()

	el := domain.NewElement("div", map[string]any{"class": "main"},
		domain.NewElement("span", nil, domain.NewTextElement("hello")),
		domain.NewTextElement("tail"),
	)
	rec.Mount(el, c)

	if len(c.Children) != 0 {
		t.Fatal("mount must not commit before the deferred flush")
	}
	if rec.WorkRoot(c) == nil {
		t.Fatal("a root work node must exist once work is scheduled")
	}
	if len(rec.WorkRoot(c).Updates) != 1 {
		t.Errorf("expected 1 queued update, got %d", len(rec.WorkRoot(c).Updates))
	}

	sched.FlushDeferred(math.Inf(1))

	if len(c.Children) != 1 {
		t.Fatalf("expected 1 committed root child, got %d", len(c.Children))
	}
	root := c.Children[0].(*domain.Instance)
	if root.Type != "div" || len(root.Children) != 2 {
		t.Fatalf("unexpected committed root: %s with %d children", root.Type, len(root.Children))
	}
	span := root.Children[0].(*domain.Instance)
	if span.Type != "span" || span.Children[0].(*domain.Text).Value != "hello" {
		t.Errorf("unexpected first child: %+v", span)
	}
	if root.Children[1].(*domain.Text).Value != "tail" {
		t.Errorf("unexpected second child: %+v", root.Children[1])
	}
	if rec.WorkRoot(c).PendingProps {
		t.Error("pending marker must clear after commit")
	}
}

func TestSyncPriorityCommitsImmediately(t *testing.T) {
	rec, _, c := newFixture()
	rec.Perform(domain.PrioritySync, func() {
		rec.Mount(domain.NewElement("div", nil), c)
	})
	if len(c.Children) != 1 {
		t.Fatal("sync priority must commit without a flush")
	}
}

func TestAnimationLane(t *testing.T) {
	rec, sched, c := newFixture()
	rec.Perform(domain.PriorityAnimation, func() {
		rec.Mount(domain.NewElement("div", nil), c)
	})

	sched.FlushDeferred(math.Inf(1))
	if len(c.Children) != 0 {
		t.Fatal("animation work must not commit on the deferred lane")
	}
	sched.FlushAnimation()
	if len(c.Children) != 1 {
		t.Fatal("animation flush must commit the work")
	}
}

func TestUpdateInPlace(t *testing.T) {
	rec, sched, c := newFixture()
	rec.Mount(domain.NewElement("div", map[string]any{"v": 1},
		domain.NewElement("span", nil),
		domain.NewTextElement("before"),
		domain.NewElement("em", nil),
	), c)
	sched.FlushDeferred(math.Inf(1))

	root := c.Children[0].(*domain.Instance)
	span := root.Children[0].(*domain.Instance)
	text := root.Children[1].(*domain.Text)

	rec.Update(domain.NewElement("div", map[string]any{"v": 2},
		domain.NewElement("span", map[string]any{"x": true}),
		domain.NewTextElement("after"),
		domain.NewElement("strong", nil),
		domain.NewTextElement("appended"),
	), c)
	sched.FlushDeferred(math.Inf(1))

	if c.Children[0] != domain.Node(root) {
		t.Fatal("same root type must keep the committed root instance")
	}
	if root.Props.(map[string]any)["v"] != 2 {
		t.Errorf("root props not replaced: %v", root.Props)
	}
	if root.Children[0] != domain.Node(span) {
		t.Error("matching child instance must be updated in place")
	}
	if root.Children[1] != domain.Node(text) || text.Value != "after" {
		t.Errorf("text must mutate in place, got %v", root.Children[1])
	}
	if got := root.Children[2].(*domain.Instance).Type; got != "strong" {
		t.Errorf("mismatched child must be replaced, got %s", got)
	}
	if len(root.Children) != 4 {
		t.Fatalf("expected 4 children after growth, got %d", len(root.Children))
	}
	if root.Children[3].(*domain.Text).Value != "appended" {
		t.Errorf("expected appended tail text, got %v", root.Children[3])
	}

	// Shrink: extra children are removed.
	rec.Update(domain.NewElement("div", nil, domain.NewElement("span", nil)), c)
	sched.FlushDeferred(math.Inf(1))
	if len(root.Children) != 1 || root.Children[0] != domain.Node(span) {
		t.Errorf("expected only the original span to remain, got %v", root.Children)
	}
}

func TestRootTypeChangeRebuildsWholesale(t *testing.T) {
	rec, sched, c := newFixture()
	rec.Mount(domain.NewElement("div", nil), c)
	sched.FlushDeferred(math.Inf(1))
	old := c.Children[0]

	rec.Update(domain.NewElement("section", nil), c)
	sched.FlushDeferred(math.Inf(1))

	if c.Children[0] == old {
		t.Fatal("a changed root type must produce a fresh instance")
	}
	if c.Children[0].(*domain.Instance).Type != "section" {
		t.Errorf("unexpected root: %v", c.Children[0])
	}
}

func TestTextRootUpdateInPlace(t *testing.T) {
	rec, sched, c := newFixture()
	rec.Mount(domain.NewTextElement("one"), c)
	sched.FlushDeferred(math.Inf(1))
	text := c.Children[0].(*domain.Text)

	rec.Update(domain.NewTextElement("two"), c)
	sched.FlushDeferred(math.Inf(1))

	if c.Children[0] != domain.Node(text) || text.Value != "two" {
		t.Errorf("text root must mutate in place, got %v", c.Children[0])
	}
}

func TestInterruptedMountParksProgress(t *testing.T) {
	rec, sched, c := newFixture()
	rec.Mount(domain.NewElement("list", nil,
		domain.NewElement("item", nil),
		domain.NewElement("item", nil),
		domain.NewElement("item", nil),
	), c)

	// Budget 10 affords a single deadline check above zero: one child is
	// built, then the work yields and reschedules itself.
	sched.FlushDeferred(10)

	if len(c.Children) != 0 {
		t.Fatal("interrupted mount must not commit")
	}
	root := rec.WorkRoot(c)
	if root.InProgress == nil {
		t.Fatal("interrupted mount must park its partial chain as in-progress")
	}
	if !root.PendingProps {
		t.Error("interrupted root must stay pending")
	}

	sched.FlushDeferred(math.Inf(1))
	if len(c.Children) != 1 {
		t.Fatal("resumed work must commit")
	}
	if got := len(c.Children[0].(*domain.Instance).Children); got != 3 {
		t.Errorf("expected 3 items after resume, got %d", got)
	}
	if root.InProgress != nil {
		t.Error("in-progress alternate must clear on commit")
	}
}

func TestUpdateWithCallback(t *testing.T) {
	rec, sched, c := newFixture()

	calls := []string{}
	rec.UpdateWithCallback(domain.NewElement("div", nil), c, func() { calls = append(calls, "first") })
	rec.UpdateWithCallback(domain.NewElement("span", nil), c, func() { calls = append(calls, "second") })
	if len(calls) != 0 {
		t.Fatal("callbacks must wait for the commit")
	}

	sched.FlushDeferred(math.Inf(1))

	// One flush processes the whole queue: only the last element wins, but
	// every processed callback runs, in order.
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("unexpected callback order: %v", calls)
	}
	if c.Children[0].(*domain.Instance).Type != "span" {
		t.Errorf("latest render must win, got %v", c.Children[0])
	}
}
