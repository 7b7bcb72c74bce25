package timer

import "time"

const (
	NotifyTitle     = "PomoBubby — Time's up!"
	NotifyFocusDone = "Focus session complete. Time for a break."
	NotifyBreakDone = "Break finished. Time to focus."
)

// State is the complete timer state. Deadline is non-zero exactly when Running is true.
type State struct {
	Phase     Phase
	Profile   Profile
	Remaining int
	Running   bool
	Deadline  time.Time
	Sessions  int

	// LastHandled is the most recent deadline that produced a completion.
	LastHandled time.Time
	StartedOnce bool
}

func NewState(cfg Config, profile Profile, sessions int) State {
	if sessions < 0 {
		sessions = 0
	}
	if profile != ProfileAccelerated {
		profile = ProfileStandard
	}
	return State{
		Phase:     PhaseFocus,
		Profile:   profile,
		Remaining: cfg.Durations(profile).Seconds(PhaseFocus),
		Sessions:  sessions,
	}
}

// Total is the full length of the current phase in seconds.
func (s State) Total(cfg Config) int {
	return cfg.Durations(s.Profile).Seconds(s.Phase)
}

type Event interface {
	isEvent()
}

type Start struct{ Now time.Time }

type Pause struct{ Now time.Time }

type Reset struct{}

// Tick recomputes remaining time from the deadline.
type Tick struct{ Now time.Time }

// DeadlineReached reports that a scheduled wakeup for Deadline fired.
type DeadlineReached struct {
	Deadline time.Time
	Now      time.Time
}

// Resume is the reconciliation check after the process was suspended or unfocused.
type Resume struct{ Now time.Time }

type SwitchProfile struct {
	Profile Profile
	Now     time.Time
}

// Skip advances to the next phase without waiting for the deadline.
type Skip struct{ Now time.Time }

func (Start) isEvent()           {}
func (Pause) isEvent()           {}
func (Reset) isEvent()           {}
func (Tick) isEvent()            {}
func (DeadlineReached) isEvent() {}
func (Resume) isEvent()          {}
func (SwitchProfile) isEvent()   {}
func (Skip) isEvent()            {}

type Effect interface {
	isEffect()
}

type TimerStarted struct{ Deadline time.Time }

type TimerStopped struct{}

type PlaySound struct{}

type Notify struct {
	Title string
	Body  string
}

type PersistSessionCount struct{ Count int }

type PhaseChanged struct {
	From Phase
	To   Phase
}

// RequestPermission is emitted on the first start of the process.
type RequestPermission struct{}

func (TimerStarted) isEffect()        {}
func (TimerStopped) isEffect()        {}
func (PlaySound) isEffect()           {}
func (Notify) isEffect()              {}
func (PersistSessionCount) isEffect() {}
func (PhaseChanged) isEffect()        {}
func (RequestPermission) isEffect()   {}

// Transition is the pure timer state machine. It never reads the clock; every time
// input arrives on the event.
func Transition(s State, ev Event, cfg Config) (State, []Effect) {
	switch e := ev.(type) {
	case Start:
		return start(s, e.Now, cfg)
	case Pause:
		if !s.Running {
			return s, nil
		}
		s.Remaining = remainingAt(s.Deadline, e.Now)
		s.Running = false
		s.Deadline = time.Time{}
		return s, []Effect{TimerStopped{}}
	case Reset:
		var effects []Effect
		if s.Running {
			effects = append(effects, TimerStopped{})
		}
		s.Running = false
		s.Deadline = time.Time{}
		s.Remaining = s.Total(cfg)
		return s, effects
	case Tick:
		return reconcile(s, e.Now, cfg)
	case Resume:
		return reconcile(s, e.Now, cfg)
	case DeadlineReached:
		if !s.Running || !e.Deadline.Equal(s.Deadline) {
			return s, nil
		}
		return reconcile(s, e.Now, cfg)
	case SwitchProfile:
		return switchProfile(s, e, cfg)
	case Skip:
		return skip(s, e.Now, cfg)
	}
	return s, nil
}

func start(s State, now time.Time, cfg Config) (State, []Effect) {
	if s.Running {
		return s, nil
	}
	var effects []Effect
	if !s.StartedOnce {
		s.StartedOnce = true
		effects = append(effects, RequestPermission{})
	}
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	s.Running = true
	s.Deadline = now.Add(time.Duration(s.Remaining) * time.Second)
	effects = append(effects, TimerStarted{Deadline: s.Deadline})
	return s, effects
}

func reconcile(s State, now time.Time, cfg Config) (State, []Effect) {
	if !s.Running {
		return s, nil
	}
	s.Remaining = remainingAt(s.Deadline, now)
	if s.Remaining > 0 {
		return s, nil
	}
	if s.Deadline.Equal(s.LastHandled) {
		return s, nil
	}
	return complete(s, now, cfg)
}

// complete runs the completion chain: stop, signal, switch phase, then auto-start.
func complete(s State, now time.Time, cfg Config) (State, []Effect) {
	s.LastHandled = s.Deadline
	s.Running = false
	s.Deadline = time.Time{}
	s.Remaining = 0

	body := NotifyBreakDone
	if s.Phase == PhaseFocus {
		body = NotifyFocusDone
	}
	effects := []Effect{
		TimerStopped{},
		PlaySound{},
		Notify{Title: NotifyTitle, Body: body},
	}

	s, changed := advance(s, cfg)
	effects = append(effects, changed...)

	if cfg.AutoStart {
		var started []Effect
		s, started = start(s, now, cfg)
		effects = append(effects, started...)
	}
	return s, effects
}

func advance(s State, cfg Config) (State, []Effect) {
	var effects []Effect
	from := s.Phase
	if from == PhaseFocus {
		s.Sessions++
		effects = append(effects, PersistSessionCount{Count: s.Sessions})
	}
	s.Phase = NextPhase(from, s.Sessions)
	s.Remaining = s.Total(cfg)
	effects = append(effects, PhaseChanged{From: from, To: s.Phase})
	return s, effects
}

func skip(s State, now time.Time, cfg Config) (State, []Effect) {
	wasRunning := s.Running
	var effects []Effect
	if wasRunning {
		s.LastHandled = s.Deadline
		s.Running = false
		s.Deadline = time.Time{}
		effects = append(effects, TimerStopped{})
	}
	s, changed := advance(s, cfg)
	effects = append(effects, changed...)
	if wasRunning {
		var started []Effect
		s, started = start(s, now, cfg)
		effects = append(effects, started...)
	}
	return s, effects
}

func switchProfile(s State, e SwitchProfile, cfg Config) (State, []Effect) {
	if e.Profile != ProfileStandard && e.Profile != ProfileAccelerated {
		return s, nil
	}
	if e.Profile == s.Profile {
		return s, nil
	}
	wasRunning := s.Running
	var effects []Effect
	if wasRunning {
		s.Running = false
		s.Deadline = time.Time{}
		effects = append(effects, TimerStopped{})
	}
	s.Profile = e.Profile
	s.Remaining = s.Total(cfg)
	if wasRunning {
		var started []Effect
		s, started = start(s, e.Now, cfg)
		effects = append(effects, started...)
	}
	return s, effects
}

func remainingAt(deadline, now time.Time) int {
	return ceilSeconds(deadline.Sub(now))
}
