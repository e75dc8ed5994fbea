// Package tooltip tracks which glossary term has its definition shown.
package tooltip

import (
	"time"

	"go.uber.org/zap"

	"folio/common"
	"folio/eventloop"
)

// DefaultHoverDelay is used when delay is not positive.
const DefaultHoverDelay = 500 * time.Millisecond

// Controller is state machine Idle -> Pending(slug) -> Active(slug). All
// methods and timer callbacks must run on the same dispatcher.
type Controller struct {
	log   *zap.Logger
	sched eventloop.Scheduler
	delay time.Duration

	state    common.TooltipState
	slug     string
	timer    eventloop.Timer
	gen      uint64
	disposed bool

	onChange func(active string)
}

func New(sched eventloop.Scheduler, delay time.Duration, log *zap.Logger) *Controller {
	if delay <= 0 {
		delay = DefaultHoverDelay
	}
	return &Controller{
		log:   log.Named("tooltip"),
		sched: sched,
		delay: delay,
	}
}

// OnChange registers callback invoked every time active term changes.
func (c *Controller) OnChange(f func(active string)) {
	c.onChange = f
}

// Active returns slug of the term whose definition is visible, or empty
// string.
func (c *Controller) Active() string {
	if c.state == common.TooltipStateActive {
		return c.slug
	}
	return ""
}

// State returns current state and slug it applies to.
func (c *Controller) State() (common.TooltipState, string) {
	return c.state, c.slug
}

func (c *Controller) HoverEnter(slug string) {
	if c.disposed || slug == "" {
		return
	}
	switch c.state {
	case common.TooltipStateActive:
		if c.slug == slug {
			return
		}
	case common.TooltipStatePending:
		if c.slug == slug {
			return
		}
	}
	c.schedule(slug)
}

func (c *Controller) HoverLeave() {
	if c.disposed {
		return
	}
	c.transition(common.TooltipStateIdle, "")
}

// Click toggles term: clicking active term hides it, any other term is shown
// immediately.
func (c *Controller) Click(slug string) {
	if c.disposed || slug == "" {
		return
	}
	if c.state == common.TooltipStateActive && c.slug == slug {
		c.transition(common.TooltipStateIdle, "")
		return
	}
	c.transition(common.TooltipStateActive, slug)
}

// Dispose cancels pending activation and hides visible term without
// notifying owner, controller ignores events afterwards.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.cancel()
	c.state, c.slug = common.TooltipStateIdle, ""
	c.disposed = true
}

func (c *Controller) schedule(slug string) {
	c.transition(common.TooltipStatePending, slug)

	gen := c.gen
	c.timer = c.sched.AfterFunc(c.delay, func() { c.fire(gen) })
}

func (c *Controller) fire(gen uint64) {
	if c.disposed || gen != c.gen || c.state != common.TooltipStatePending {
		c.log.Debug("Stale activation ignored", zap.Uint64("gen", gen), zap.Uint64("current", c.gen))
		return
	}
	c.timer = nil
	c.transition(common.TooltipStateActive, c.slug)
}

// transition cancels outstanding timer, moves to new state and notifies
// owner when visible term changed.
func (c *Controller) transition(state common.TooltipState, slug string) {
	before := c.Active()

	c.cancel()
	c.state, c.slug = state, slug
	c.log.Debug("Tooltip state", zap.Stringer("state", state), zap.String("term", slug))

	if after := c.Active(); after != before && c.onChange != nil {
		c.onChange(after)
	}
}

func (c *Controller) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
