package tooltip

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"folio/common"
	"folio/eventloop"
)

func newController(t *testing.T) (*Controller, *eventloop.Manual, *[]string) {
	t.Helper()

	m := eventloop.NewManual()
	c := New(m, DefaultHoverDelay, zaptest.NewLogger(t))
	var changes []string
	c.OnChange(func(active string) { changes = append(changes, active) })
	return c, m, &changes
}

func assertState(t *testing.T, c *Controller, state common.TooltipState, slug string) {
	t.Helper()
	gotState, gotSlug := c.State()
	if gotState != state || (state != common.TooltipStateIdle && gotSlug != slug) {
		t.Fatalf("state = %s(%q), want %s(%q)", gotState, gotSlug, state, slug)
	}
}

func TestHoverActivatesAfterDelay(t *testing.T) {
	c, m, changes := newController(t)

	c.HoverEnter("senja")
	assertState(t, c, common.TooltipStatePending, "senja")
	if c.Active() != "" {
		t.Fatalf("term must not be shown while pending")
	}

	m.Advance(DefaultHoverDelay - time.Millisecond)
	assertState(t, c, common.TooltipStatePending, "senja")

	m.Advance(time.Millisecond)
	assertState(t, c, common.TooltipStateActive, "senja")
	if c.Active() != "senja" {
		t.Fatalf("Active() = %q", c.Active())
	}
	if len(*changes) != 1 || (*changes)[0] != "senja" {
		t.Fatalf("unexpected change notifications %v", *changes)
	}
}

func TestZeroDelayUsesDefault(t *testing.T) {
	m := eventloop.NewManual()
	c := New(m, 0, zaptest.NewLogger(t))

	c.HoverEnter("senja")
	m.Advance(DefaultHoverDelay - time.Millisecond)
	assertState(t, c, common.TooltipStatePending, "senja")
	m.Advance(time.Millisecond)
	assertState(t, c, common.TooltipStateActive, "senja")
}

func TestHoverLeaveBeforeDelay(t *testing.T) {
	c, m, changes := newController(t)

	c.HoverEnter("senja")
	m.Advance(100 * time.Millisecond)
	c.HoverLeave()
	assertState(t, c, common.TooltipStateIdle, "")
	if m.Pending() != 0 {
		t.Fatalf("timer must be cancelled, %d pending", m.Pending())
	}

	m.Advance(time.Second)
	assertState(t, c, common.TooltipStateIdle, "")
	if len(*changes) != 0 {
		t.Fatalf("activation must never fire, got %v", *changes)
	}
}

func TestHoverLeaveActive(t *testing.T) {
	c, m, changes := newController(t)

	c.HoverEnter("senja")
	m.Advance(DefaultHoverDelay)
	c.HoverLeave()
	assertState(t, c, common.TooltipStateIdle, "")
	if got := *changes; len(got) != 2 || got[1] != "" {
		t.Fatalf("unexpected change notifications %v", got)
	}
}

func TestHoverSwitchPending(t *testing.T) {
	c, m, _ := newController(t)

	c.HoverEnter("senja")
	m.Advance(400 * time.Millisecond)
	c.HoverEnter("fajar")
	assertState(t, c, common.TooltipStatePending, "fajar")
	if m.Pending() != 1 {
		t.Fatalf("expected single pending timer, got %d", m.Pending())
	}

	// old deadline passes, new one is not due yet
	m.Advance(200 * time.Millisecond)
	assertState(t, c, common.TooltipStatePending, "fajar")

	m.Advance(300 * time.Millisecond)
	assertState(t, c, common.TooltipStateActive, "fajar")
}

func TestHoverSamePendingKeepsDeadline(t *testing.T) {
	c, m, _ := newController(t)

	c.HoverEnter("senja")
	m.Advance(300 * time.Millisecond)
	c.HoverEnter("senja")
	m.Advance(200 * time.Millisecond)
	assertState(t, c, common.TooltipStateActive, "senja")
}

func TestHoverFromActive(t *testing.T) {
	c, m, changes := newController(t)

	c.HoverEnter("senja")
	m.Advance(DefaultHoverDelay)

	c.HoverEnter("senja")
	assertState(t, c, common.TooltipStateActive, "senja")

	c.HoverEnter("fajar")
	assertState(t, c, common.TooltipStatePending, "fajar")
	if c.Active() != "" {
		t.Fatalf("previous term must be hidden, got %q", c.Active())
	}
	m.Advance(DefaultHoverDelay)
	assertState(t, c, common.TooltipStateActive, "fajar")

	want := []string{"senja", "", "fajar"}
	if got := *changes; len(got) != len(want) {
		t.Fatalf("changes = %v, want %v", got, want)
	}
	for i, w := range want {
		if (*changes)[i] != w {
			t.Fatalf("changes = %v, want %v", *changes, want)
		}
	}
}

func TestClick(t *testing.T) {
	c, m, _ := newController(t)

	c.Click("senja")
	assertState(t, c, common.TooltipStateActive, "senja")

	c.Click("fajar")
	assertState(t, c, common.TooltipStateActive, "fajar")
	if c.Active() != "fajar" {
		t.Fatalf("at most one term may be active, got %q", c.Active())
	}

	c.Click("fajar")
	assertState(t, c, common.TooltipStateIdle, "")

	c.HoverEnter("senja")
	c.Click("senja")
	assertState(t, c, common.TooltipStateActive, "senja")
	if m.Pending() != 0 {
		t.Fatalf("click must cancel pending activation")
	}
	m.Advance(time.Second)
	assertState(t, c, common.TooltipStateActive, "senja")
}

func TestStaleTimerIgnored(t *testing.T) {
	m := eventloop.NewManual()
	c := New(nopScheduler{m}, DefaultHoverDelay, zaptest.NewLogger(t))

	c.HoverEnter("senja")
	c.HoverLeave()
	c.HoverEnter("fajar")
	c.HoverLeave()
	// both timers survive because nopScheduler ignores Stop
	m.Advance(time.Second)
	assertState(t, c, common.TooltipStateIdle, "")
}

type nopScheduler struct {
	m *eventloop.Manual
}

type unstoppable struct{}

func (unstoppable) Stop() bool { return true }

func (s nopScheduler) AfterFunc(d time.Duration, f func()) eventloop.Timer {
	s.m.AfterFunc(d, f)
	return unstoppable{}
}

func TestDispose(t *testing.T) {
	c, m, changes := newController(t)

	c.HoverEnter("senja")
	c.Dispose()
	if m.Pending() != 0 {
		t.Fatalf("dispose must cancel timer")
	}
	m.Advance(time.Second)
	c.Click("senja")
	c.HoverEnter("fajar")
	if c.Active() != "" || len(*changes) != 0 {
		t.Fatalf("disposed controller must ignore events")
	}
	c.Dispose()
}
