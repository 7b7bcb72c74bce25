package timer

import (
	"strings"
	"testing"
	"time"
)

func TestRealClockHasNoMonotonicReading(t *testing.T) {
	now := RealClock{}.Now()
	if strings.Contains(now.String(), "m=") {
		t.Fatalf("real clock must read wall time only, got %s", now)
	}
	deadline := now.Add(25 * time.Minute)
	if strings.Contains(deadline.String(), "m=") {
		t.Fatalf("deadlines derived from the real clock must stay wall-clock based, got %s", deadline)
	}
}

func TestControllerDrivesStateFromClock(t *testing.T) {
	clock := NewManualClock(t0)
	c := NewController(DefaultConfig(), clock, ProfileAccelerated, 0)

	c.Toggle()
	if !c.State().Running {
		t.Fatal("expected timer to run after toggle")
	}
	clock.Advance(4 * time.Second)
	c.Tick()
	if got := c.State().Remaining; got != 6 {
		t.Fatalf("remaining = %d, want 6", got)
	}
	if p := c.Progress(); p < 0.39 || p > 0.41 {
		t.Fatalf("progress = %f, want 0.4", p)
	}

	clock.Advance(6 * time.Second)
	effects := c.Tick()
	if !hasEffect[Notify](effects) {
		t.Fatalf("expected completion effects, got %#v", effects)
	}
	st := c.State()
	if st.Phase != PhaseShortBreak || st.Sessions != 1 || !st.Running || st.Remaining != 5 {
		t.Fatalf("unexpected state after completion: %+v", st)
	}
}

func TestControllerReconcileAfterSuspend(t *testing.T) {
	clock := NewManualClock(t0)
	c := NewController(DefaultConfig(), clock, ProfileStandard, 3)
	c.Start()
	deadline := c.State().Deadline

	clock.Set(deadline.Add(5000 * time.Millisecond))
	c.Reconcile()
	if st := c.State(); st.Phase != PhaseLongBreak || st.Sessions != 4 {
		t.Fatalf("unexpected state after reconcile: %+v", st)
	}

	effects := c.DeadlineReached(deadline)
	if len(effects) != 0 || c.State().Sessions != 4 {
		t.Fatalf("late deadline wakeup must be ignored, got %#v", effects)
	}
}

func TestControllerSwitchProfileAndReset(t *testing.T) {
	clock := NewManualClock(t0)
	c := NewController(DefaultConfig(), clock, ProfileStandard, 0)
	c.SwitchProfile(ProfileAccelerated)
	if st := c.State(); st.Remaining != 10 || st.Profile != ProfileAccelerated {
		t.Fatalf("unexpected state: %+v", st)
	}
	c.Start()
	clock.Advance(3 * time.Second)
	c.Pause()
	c.Reset()
	if st := c.State(); st.Remaining != 10 || st.Running {
		t.Fatalf("unexpected reset state: %+v", st)
	}
	c.Skip()
	if c.State().Phase != PhaseShortBreak {
		t.Fatalf("expected skip to short break, got %s", c.State().Phase)
	}
}
