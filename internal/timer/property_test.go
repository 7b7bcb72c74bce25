package timer

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func drawConfig(t *rapid.T) Config {
	secs := func(label string) time.Duration {
		return time.Duration(rapid.IntRange(1, 3600).Draw(t, label)) * time.Second
	}
	return Config{
		Standard: Durations{
			Focus:      secs("focus"),
			ShortBreak: secs("short"),
			LongBreak:  secs("long"),
		},
		Accelerated: DefaultConfig().Accelerated,
		AutoStart:   rapid.Bool().Draw(t, "auto_start"),
	}
}

// Reset after any start/pause sequence restores the full phase duration.
func TestPropertyResetRestoresDuration(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := drawConfig(t)
		profile := rapid.SampledFrom([]Profile{ProfileStandard, ProfileAccelerated}).Draw(t, "profile")
		s := NewState(cfg, profile, rapid.IntRange(0, 20).Draw(t, "sessions"))
		now := t0
		steps := rapid.IntRange(0, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			now = now.Add(time.Duration(rapid.IntRange(0, 5000).Draw(t, "gap_ms")) * time.Millisecond)
			if rapid.Bool().Draw(t, "start") {
				s, _ = Transition(s, Start{Now: now}, cfg)
			} else {
				s, _ = Transition(s, Pause{Now: now}, cfg)
			}
		}
		s, _ = Transition(s, Reset{}, cfg)
		if want := cfg.Durations(profile).Seconds(s.Phase); s.Remaining != want {
			t.Fatalf("remaining after reset = %d, want %d", s.Remaining, want)
		}
		if s.Running || !s.Deadline.IsZero() {
			t.Fatalf("reset left timer running: %+v", s)
		}
	})
}

// Starting then immediately pausing never changes the phase.
func TestPropertyStartPauseKeepsPhase(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := drawConfig(t)
		s := NewState(cfg, ProfileStandard, rapid.IntRange(0, 20).Draw(t, "sessions"))
		s.Phase = rapid.SampledFrom([]Phase{PhaseFocus, PhaseShortBreak, PhaseLongBreak}).Draw(t, "phase")
		s.Remaining = s.Total(cfg)
		before := s.Phase
		s, _ = Transition(s, Start{Now: t0}, cfg)
		s, _ = Transition(s, Pause{Now: t0}, cfg)
		if s.Phase != before {
			t.Fatalf("phase changed from %s to %s", before, s.Phase)
		}
		if s.Remaining != s.Total(cfg) {
			t.Fatalf("immediate pause lost time: %d of %d", s.Remaining, s.Total(cfg))
		}
	})
}

// Deadline is set exactly when the timer runs, and remaining never goes negative.
func TestPropertyDeadlineInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := drawConfig(t)
		s := NewState(cfg, ProfileStandard, 0)
		now := t0
		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			now = now.Add(time.Duration(rapid.IntRange(0, 1800).Draw(t, "gap_s")) * time.Second)
			var ev Event
			switch rapid.IntRange(0, 6).Draw(t, "event") {
			case 0:
				ev = Start{Now: now}
			case 1:
				ev = Pause{Now: now}
			case 2:
				ev = Reset{}
			case 3:
				ev = Tick{Now: now}
			case 4:
				ev = Resume{Now: now}
			case 5:
				ev = DeadlineReached{Deadline: s.Deadline, Now: now}
			default:
				ev = Skip{Now: now}
			}
			prevSessions := s.Sessions
			s, _ = Transition(s, ev, cfg)
			if s.Running == s.Deadline.IsZero() {
				t.Fatalf("running=%v with deadline %v after %T", s.Running, s.Deadline, ev)
			}
			if s.Remaining < 0 {
				t.Fatalf("negative remaining after %T", ev)
			}
			if s.Sessions < prevSessions || s.Sessions > prevSessions+1 {
				t.Fatalf("session count jumped from %d to %d after %T", prevSessions, s.Sessions, ev)
			}
		}
	})
}

// A reached deadline is counted once regardless of how many paths observe it.
func TestPropertyCompletionCountedOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := drawConfig(t)
		cfg.AutoStart = false
		s := NewState(cfg, ProfileStandard, rapid.IntRange(0, 20).Draw(t, "sessions"))
		before := s.Sessions
		s, _ = Transition(s, Start{Now: t0}, cfg)
		deadline := s.Deadline
		n := rapid.IntRange(1, 10).Draw(t, "observers")
		for i := 0; i < n; i++ {
			late := time.Duration(rapid.IntRange(0, 60000).Draw(t, "late_ms")) * time.Millisecond
			switch rapid.IntRange(0, 2).Draw(t, "path") {
			case 0:
				s, _ = Transition(s, Tick{Now: deadline.Add(late)}, cfg)
			case 1:
				s, _ = Transition(s, Resume{Now: deadline.Add(late)}, cfg)
			default:
				s, _ = Transition(s, DeadlineReached{Deadline: deadline, Now: deadline.Add(late)}, cfg)
			}
		}
		if s.Sessions != before+1 {
			t.Fatalf("sessions = %d, want %d", s.Sessions, before+1)
		}
	})
}
