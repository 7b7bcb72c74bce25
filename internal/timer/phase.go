package timer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidProfile  = errors.New("timer: invalid profile")
	ErrInvalidDuration = errors.New("timer: duration must be positive")
)

type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

func (p Phase) Label() string {
	switch p {
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

type Profile string

const (
	ProfileStandard    Profile = "standard"
	ProfileAccelerated Profile = "accelerated"
)

func ParseProfile(raw string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "standard", "std", "normal":
		return ProfileStandard, nil
	case "accelerated", "dev", "fast":
		return ProfileAccelerated, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProfile, raw)
}

func (p Profile) Label() string {
	if p == ProfileAccelerated {
		return "developer"
	}
	return "standard"
}

type Durations struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

func (d Durations) For(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return d.ShortBreak
	case PhaseLongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

// Seconds returns the whole-second length of the phase, rounded up and never negative.
func (d Durations) Seconds(p Phase) int {
	return ceilSeconds(d.For(p))
}

func (d Durations) Validate() error {
	for _, v := range []time.Duration{d.Focus, d.ShortBreak, d.LongBreak} {
		if v <= 0 {
			return ErrInvalidDuration
		}
	}
	return nil
}

const LongBreakEvery = 4

type Config struct {
	Standard    Durations
	Accelerated Durations
	AutoStart   bool
}

func DefaultConfig() Config {
	return Config{
		Standard: Durations{
			Focus:      25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
		Accelerated: Durations{
			Focus:      10 * time.Second,
			ShortBreak: 5 * time.Second,
			LongBreak:  8 * time.Second,
		},
		AutoStart: true,
	}
}

func (c Config) Durations(p Profile) Durations {
	if p == ProfileAccelerated {
		return c.Accelerated
	}
	return c.Standard
}

func (c Config) Validate() error {
	if err := c.Standard.Validate(); err != nil {
		return fmt.Errorf("standard profile: %w", err)
	}
	if err := c.Accelerated.Validate(); err != nil {
		return fmt.Errorf("accelerated profile: %w", err)
	}
	return nil
}

// NextPhase applies the cycle rule. sessions is the count after any increment for the
// completing phase.
func NextPhase(completed Phase, sessions int) Phase {
	if completed != PhaseFocus {
		return PhaseFocus
	}
	if sessions > 0 && sessions%LongBreakEvery == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	return int(secs)
}
