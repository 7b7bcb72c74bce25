package timer

import (
	"fmt"
	"time"
)

// Controller owns one timer State and feeds it clock readings. It is not safe for
// concurrent use; the TUI drives it from its update loop.
type Controller struct {
	state State
	cfg   Config
	clock Clock
}

func NewController(cfg Config, clock Clock, profile Profile, sessions int) *Controller {
	if clock == nil {
		clock = RealClock{}
	}
	return &Controller{
		state: NewState(cfg, profile, sessions),
		cfg:   cfg,
		clock: clock,
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Apply runs ev through Transition and returns the effects for the caller to perform.
func (c *Controller) Apply(ev Event) []Effect {
	next, effects := Transition(c.state, ev, c.cfg)
	c.state = next
	return effects
}

func (c *Controller) Start() []Effect {
	return c.Apply(Start{Now: c.clock.Now()})
}

func (c *Controller) Pause() []Effect {
	return c.Apply(Pause{Now: c.clock.Now()})
}

func (c *Controller) Toggle() []Effect {
	if c.state.Running {
		return c.Pause()
	}
	return c.Start()
}

func (c *Controller) Reset() []Effect {
	return c.Apply(Reset{})
}

func (c *Controller) Tick() []Effect {
	return c.Apply(Tick{Now: c.clock.Now()})
}

func (c *Controller) Reconcile() []Effect {
	return c.Apply(Resume{Now: c.clock.Now()})
}

func (c *Controller) DeadlineReached(deadline time.Time) []Effect {
	return c.Apply(DeadlineReached{Deadline: deadline, Now: c.clock.Now()})
}

func (c *Controller) SwitchProfile(p Profile) []Effect {
	return c.Apply(SwitchProfile{Profile: p, Now: c.clock.Now()})
}

func (c *Controller) Skip() []Effect {
	return c.Apply(Skip{Now: c.clock.Now()})
}

// Progress is the completed fraction of the current phase in [0,1].
func (c *Controller) Progress() float64 {
	total := c.state.Total(c.cfg)
	if total <= 0 {
		return 0
	}
	done := float64(total-c.state.Remaining) / float64(total)
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
