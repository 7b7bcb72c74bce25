package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomobubby/internal/notify"
	"github.com/sandeepkv93/pomobubby/internal/scheduler"
	"github.com/sandeepkv93/pomobubby/internal/timer"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case " ":
		return m.withEffects(m.timer.Toggle())
	case "r":
		m, cmd, _ := m.withEffects(m.timer.Reset())
		m.Status = StatusBar{Text: "timer reset"}
		return m, cmd, true
	case "n":
		return m.withEffects(m.timer.Skip())
	case "d":
		return m.toggleProfile()
	}
	return m, nil, false
}

func (m Model) toggleProfile() (Model, tea.Cmd, bool) {
	next := timer.ProfileAccelerated
	if m.timer.State().Profile == timer.ProfileAccelerated {
		next = timer.ProfileStandard
	}
	return m.switchProfile(next)
}

func (m Model) switchProfile(p timer.Profile) (Model, tea.Cmd, bool) {
	m, cmd, _ := m.withEffects(m.timer.SwitchProfile(p))
	if p == timer.ProfileAccelerated {
		m.Status = StatusBar{Text: "developer mode on: 10s / 5s / 8s"}
	} else {
		m.Status = StatusBar{Text: "standard timings restored"}
	}
	return m, cmd, true
}

// withEffects performs the effects produced by a timer transition. Persistence runs
// inline; sound and notification run as commands.
func (m Model) withEffects(effects []timer.Effect) (Model, tea.Cmd, bool) {
	var cmds []tea.Cmd
	var started, stopped bool
	var changed *timer.PhaseChanged
	failuresBefore := m.failures
	for _, eff := range effects {
		switch e := eff.(type) {
		case timer.TimerStarted:
			m.cancelWakeup()
			m.scheduleWakeup(e.Deadline)
			m.tickGen++
			cmds = append(cmds, m.tickCmd())
			started = true
		case timer.TimerStopped:
			m.cancelWakeup()
			m.tickGen++
			stopped = true
		case timer.PlaySound:
			cmds = append(cmds, m.soundCmd())
		case timer.Notify:
			cmds = append(cmds, m.notifyCmd(notify.Message{Title: e.Title, Body: e.Body}))
		case timer.PersistSessionCount:
			m.saveSessions(e.Count)
		case timer.PhaseChanged:
			changed = &e
			m.log.Info().Str("from", string(e.From)).Str("to", string(e.To)).Int("sessions", m.timer.State().Sessions).Msg("phase changed")
		case timer.RequestPermission:
			if m.Permission.ShouldPrompt() {
				m.PermissionPrompt = true
			}
		}
	}
	if m.failures == failuresBefore {
		switch {
		case changed != nil:
			m.Status = StatusBar{Text: fmt.Sprintf("%s complete, next: %s", changed.From.Label(), changed.To.Label())}
		case started:
			m.Status = StatusBar{Text: fmt.Sprintf("%s running", m.timer.State().Phase.Label())}
		case stopped:
			m.Status = StatusBar{Text: "timer paused"}
		}
	}
	return m, tea.Batch(cmds...), true
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.tickInterval, func(at time.Time) tea.Msg { return TickMsg{Gen: gen, At: at} })
}

// onTick recomputes the remaining time. Ticks from a superseded run are dropped.
func (m Model) onTick(msg TickMsg) (Model, tea.Cmd) {
	if msg.Gen != m.tickGen || !m.timer.State().Running {
		return m, nil
	}
	m, cmd, _ := m.withEffects(m.timer.Tick())
	if m.tickGen == msg.Gen && m.timer.State().Running {
		return m, tea.Batch(cmd, m.tickCmd())
	}
	return m, cmd
}

func (m Model) onWakeup(ev scheduler.Wakeup) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if ev.Kind == wakeupKindDeadline && ev.ID == m.wakeupID {
		m.wakeupID = ""
		m, cmd, _ = m.withEffects(m.timer.DeadlineReached(ev.TriggerAt))
	}
	return m, tea.Batch(cmd, waitForWakeupCmd(m.scheduler))
}

// reconcile catches up after the terminal regains focus or the process resumes.
func (m Model) reconcile() (Model, tea.Cmd) {
	m, cmd, _ := m.withEffects(m.timer.Reconcile())
	if m.timer.State().Running {
		m.tickGen++
		return m, tea.Batch(cmd, m.tickCmd())
	}
	return m, cmd
}

func (m *Model) scheduleWakeup(deadline time.Time) {
	if m.scheduler == nil {
		return
	}
	id := fmt.Sprintf("deadline-%d", deadline.UnixNano())
	if err := m.scheduler.Schedule(scheduler.Wakeup{ID: id, Kind: wakeupKindDeadline, TriggerAt: deadline}); err != nil {
		m.log.Warn().Err(err).Msg("schedule deadline wakeup failed")
		return
	}
	m.wakeupID = id
}

func (m *Model) cancelWakeup() {
	if m.scheduler == nil || m.wakeupID == "" {
		return
	}
	m.scheduler.Cancel(m.wakeupID)
	m.wakeupID = ""
}

func waitForWakeupCmd(engine *scheduler.Engine) tea.Cmd {
	if engine == nil {
		return nil
	}
	ch := engine.C()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return WakeupMsg{Event: ev}
	}
}

func (m Model) soundCmd() tea.Cmd {
	signaler, ctx := m.signaler, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ioTimeout)
		defer cancel()
		if err := signaler.Signal(ctx); err != nil {
			return EffectErrMsg{Source: "sound", Err: err}
		}
		return nil
	}
}

func (m Model) notifyCmd(msg notify.Message) tea.Cmd {
	notifier, perm, ctx := m.notifier, m.Permission, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ioTimeout)
		defer cancel()
		if _, err := notify.Deliver(ctx, notifier, perm, msg); err != nil {
			return EffectErrMsg{Source: "notification", Err: err}
		}
		return nil
	}
}

func (m Model) handlePermissionKey(msg tea.KeyMsg) Model {
	before := m.failures
	switch msg.String() {
	case "y", "enter":
		m.Permission = notify.PermissionGranted
		m.savePermission()
	case "n":
		m.Permission = notify.PermissionDenied
		m.savePermission()
	case "esc":
	default:
		return m
	}
	m.PermissionPrompt = false
	m.info(before, m.Permission.Hint())
	return m
}
