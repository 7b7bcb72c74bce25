package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomobubby/internal/mocks"
	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/notify"
	"github.com/sandeepkv93/pomobubby/internal/scheduler"
	"github.com/sandeepkv93/pomobubby/internal/storage"
	"github.com/sandeepkv93/pomobubby/internal/timer"
	"github.com/sandeepkv93/pomobubby/internal/video"
	"github.com/sandeepkv93/pomobubby/internal/views"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	kv    *storage.JSONFileKV
	store *storage.State
	clock *timer.ManualClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv, err := storage.OpenJSONFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return &harness{
		kv:    kv,
		store: storage.NewState(kv, zerolog.Nop()),
		clock: timer.NewManualClock(t0),
	}
}

func (h *harness) set(t *testing.T, key, value string) {
	t.Helper()
	if err := h.kv.Set(context.Background(), key, value); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func (h *harness) model(mutate func(*Deps)) Model {
	deps := Deps{
		Timer:        timer.DefaultConfig(),
		Profile:      timer.ProfileStandard,
		Clock:        h.clock,
		Store:        h.store,
		Player:       video.NoopPlayer{},
		Notifier:     notify.NoopNotifier{},
		Signaler:     notify.BellSignaler{W: &strings.Builder{}},
		Logger:       zerolog.Nop(),
		Theme:        "dark",
		TickInterval: time.Millisecond,
		Volume:       60,
	}
	if mutate != nil {
		mutate(&deps)
	}
	return NewModel(deps)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// runCmd executes cmd and any batched children, collecting the non-nil messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch v := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range v {
			out = append(out, runCmd(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func TestNewModelDefaults(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	if m.Focus != views.PaneTimer {
		t.Fatalf("expected timer pane focus, got %q", m.Focus)
	}
	st := m.Timer().State()
	if st.Phase != timer.PhaseFocus || st.Remaining != 25*60 || st.Running || st.Sessions != 0 {
		t.Fatalf("unexpected initial timer state: %+v", st)
	}
	if m.Keys.Quit != "q" || m.ThemeName != "dark" || m.Music.Volume != 60 {
		t.Fatalf("unexpected defaults: keys=%+v theme=%s music=%+v", m.Keys, m.ThemeName, m.Music)
	}
	if m.Permission != notify.PermissionDefault {
		t.Fatalf("expected default permission, got %s", m.Permission)
	}
}

func TestNewModelRestoresPersistedState(t *testing.T) {
	h := newHarness(t)
	h.set(t, storage.KeySessionCount, "3")
	h.set(t, storage.KeyTheme, "light")
	h.set(t, storage.KeyMusicURL, "https://youtu.be/dQw4w9WgXcQ")
	h.set(t, storage.KeyNotifications, "granted")
	h.set(t, storage.KeyVolume, "35")
	h.set(t, storage.KeyTasks, `[{"id":"a","text":"legacy","column":"doing"},{"title":"fresh"}]`)

	m := h.model(nil)
	if got := m.Timer().State().Sessions; got != 3 {
		t.Fatalf("expected 3 sessions, got %d", got)
	}
	if m.ThemeName != "light" || m.Permission != notify.PermissionGranted || m.Music.Volume != 35 {
		t.Fatalf("unexpected restored settings: theme=%s perm=%s vol=%d", m.ThemeName, m.Permission, m.Music.Volume)
	}
	if m.Music.VideoID != "dQw4w9WgXcQ" || m.Music.State != "cued" {
		t.Fatalf("expected cued track, got %+v", m.Music)
	}
	tasks := m.Tasks()
	if len(tasks) != 2 || tasks[0].Title != "legacy" || tasks[0].Status != model.StatusDoing || tasks[1].Status != model.StatusTodo {
		t.Fatalf("unexpected restored tasks: %+v", tasks)
	}
}

func TestNewModelCorruptBoardStartsEmpty(t *testing.T) {
	h := newHarness(t)
	h.set(t, storage.KeyTasks, "{not json")
	m := h.model(nil)
	if len(m.Tasks()) != 0 {
		t.Fatalf("expected empty board, got %+v", m.Tasks())
	}
	if !m.Status.IsError || !errors.Is(m.LastError, storage.ErrCorruptBoard) {
		t.Fatalf("expected corrupt board error, status=%+v err=%v", m.Status, m.LastError)
	}
}

func TestRestoreMusicCuesWithoutPlaying(t *testing.T) {
	ctrl := gomock.NewController(t)
	player := mocks.NewMockPlayer(ctrl)
	h := newHarness(t)
	h.set(t, storage.KeyMusicURL, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	m := h.model(func(d *Deps) { d.Player = player; d.Loop = true })
	gomock.InOrder(
		player.EXPECT().Cue(gomock.Any(), "dQw4w9WgXcQ").Return(nil),
		player.EXPECT().SetVolume(gomock.Any(), 60).Return(nil),
		player.EXPECT().SetLoop(gomock.Any(), true).Return(nil),
	)
	msgs := runCmd(m.restoreMusicCmd())
	if len(msgs) != 1 {
		t.Fatalf("expected one result message, got %v", msgs)
	}
	res, ok := msgs[0].(MusicResultMsg)
	if !ok || res.Err != nil {
		t.Fatalf("unexpected restore result: %#v", msgs[0])
	}
}

func TestSpaceStartsTimerAndPromptsForPermission(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)

	m, cmd := press(m, " ")
	if !m.Timer().State().Running {
		t.Fatal("expected timer running")
	}
	if cmd == nil {
		t.Fatal("expected tick command")
	}
	if !m.PermissionPrompt {
		t.Fatal("expected permission prompt on first start")
	}

	// Keys go to the prompt while it is open.
	m, _ = press(m, " ")
	if !m.Timer().State().Running || !m.PermissionPrompt {
		t.Fatal("space must not reach the timer while the prompt is open")
	}

	m, _ = press(m, "y")
	if m.PermissionPrompt || m.Permission != notify.PermissionGranted {
		t.Fatalf("expected granted permission, got prompt=%v perm=%s", m.PermissionPrompt, m.Permission)
	}
	raw, _ := h.store.NotificationPermission(context.Background())
	if raw != "granted" {
		t.Fatalf("expected persisted permission, got %q", raw)
	}

	m, _ = press(m, " ", " ")
	if m.PermissionPrompt {
		t.Fatal("prompt must only appear on the first start")
	}
}

func TestPermissionDeniedIsPersisted(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	m, _ = press(m, " ", "n")
	if m.Permission != notify.PermissionDenied || m.PermissionPrompt {
		t.Fatalf("expected denied permission, got %s", m.Permission)
	}
	raw, _ := h.store.NotificationPermission(context.Background())
	if raw != "denied" {
		t.Fatalf("expected persisted denial, got %q", raw)
	}
}

func TestTickCompletesFocusAndRunsEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	signaler := mocks.NewMockSignaler(ctrl)
	h := newHarness(t)
	h.set(t, storage.KeyNotifications, "granted")

	m := h.model(func(d *Deps) {
		d.Profile = timer.ProfileAccelerated
		d.Notifier = notifier
		d.Signaler = signaler
	})
	m, _ = press(m, " ")
	if m.PermissionPrompt {
		t.Fatal("granted permission must not prompt")
	}

	h.clock.Advance(4 * time.Second)
	m, _ = send(m, TickMsg{Gen: m.tickGen})
	if got := m.Timer().State().Remaining; got != 6 {
		t.Fatalf("expected 6s remaining, got %d", got)
	}

	signaler.EXPECT().Signal(gomock.Any()).Return(nil).Times(1)
	notifier.EXPECT().Send(gomock.Any(), notify.Message{Title: timer.NotifyTitle, Body: timer.NotifyFocusDone}).Return(nil).Times(1)

	h.clock.Advance(6 * time.Second)
	staleGen := m.tickGen
	m, cmd := send(m, TickMsg{Gen: staleGen})
	runCmd(cmd)

	st := m.Timer().State()
	if st.Phase != timer.PhaseShortBreak || st.Sessions != 1 || !st.Running || st.Remaining != 5 {
		t.Fatalf("unexpected state after completion: %+v", st)
	}
	if n, _ := h.store.SessionCount(context.Background()); n != 1 {
		t.Fatalf("expected persisted session count 1, got %d", n)
	}
	if !strings.Contains(m.Status.Text, "Focus complete") {
		t.Fatalf("expected completion status, got %q", m.Status.Text)
	}

	// A tick from the finished run changes nothing.
	m, cmd = send(m, TickMsg{Gen: staleGen})
	if cmd != nil || m.Timer().State().Sessions != 1 {
		t.Fatalf("stale tick must be ignored, sessions=%d", m.Timer().State().Sessions)
	}
}

func TestCompletionWithoutPermissionSkipsNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	signaler := mocks.NewMockSignaler(ctrl)
	h := newHarness(t)
	h.set(t, storage.KeyNotifications, "denied")

	m := h.model(func(d *Deps) {
		d.Profile = timer.ProfileAccelerated
		d.Notifier = notifier
		d.Signaler = signaler
	})
	signaler.EXPECT().Signal(gomock.Any()).Return(errors.New("no audio device"))

	m, _ = press(m, " ")
	h.clock.Advance(10 * time.Second)
	m, cmd := send(m, TickMsg{Gen: m.tickGen})
	msgs := runCmd(cmd)

	var effectErr *EffectErrMsg
	for _, msg := range msgs {
		if e, ok := msg.(EffectErrMsg); ok {
			effectErr = &e
		}
	}
	if effectErr == nil || effectErr.Source != "sound" {
		t.Fatalf("expected sound failure message, got %v", msgs)
	}
	m, _ = send(m, *effectErr)
	if m.Timer().State().Phase != timer.PhaseShortBreak {
		t.Fatalf("audio failure must not block the transition, phase=%s", m.Timer().State().Phase)
	}
}

func TestWakeupDeliversDeadlineOnce(t *testing.T) {
	h := newHarness(t)
	engine := scheduler.NewEngine(4, scheduler.WithClock(h.clock.Now))
	m := h.model(func(d *Deps) {
		d.Profile = timer.ProfileAccelerated
		d.Scheduler = engine
	})

	m, _ = press(m, " ", "esc")
	if engine.Pending() != 1 || m.wakeupID == "" {
		t.Fatalf("expected one scheduled wakeup, pending=%d id=%q", engine.Pending(), m.wakeupID)
	}
	deadline := m.Timer().State().Deadline
	ev := scheduler.Wakeup{ID: m.wakeupID, Kind: wakeupKindDeadline, TriggerAt: deadline}

	h.clock.Set(deadline.Add(3 * time.Second))
	m, _ = send(m, WakeupMsg{Event: ev})
	if got := m.Timer().State().Sessions; got != 1 {
		t.Fatalf("expected one completed session, got %d", got)
	}
	m, _ = send(m, WakeupMsg{Event: ev})
	if got := m.Timer().State().Sessions; got != 1 {
		t.Fatalf("repeated wakeup must not count twice, got %d", got)
	}
}

func TestPauseCancelsWakeup(t *testing.T) {
	h := newHarness(t)
	engine := scheduler.NewEngine(4, scheduler.WithClock(h.clock.Now))
	m := h.model(func(d *Deps) { d.Scheduler = engine })

	m, _ = press(m, " ", "esc")
	h.clock.Advance(90 * time.Second)
	m, _ = press(m, " ")
	st := m.Timer().State()
	if st.Running || st.Remaining != 25*60-90 {
		t.Fatalf("unexpected paused state: %+v", st)
	}
	if engine.Pending() != 0 || m.wakeupID != "" {
		t.Fatalf("expected wakeup cancelled, pending=%d", engine.Pending())
	}
}

func TestFocusRegainReconcilesMissedDeadline(t *testing.T) {
	h := newHarness(t)
	m := h.model(func(d *Deps) { d.Profile = timer.ProfileAccelerated })

	m, _ = press(m, " ", "esc")
	h.clock.Advance(30 * time.Second)
	m, _ = send(m, tea.FocusMsg{})
	st := m.Timer().State()
	if st.Sessions != 1 || st.Phase != timer.PhaseShortBreak {
		t.Fatalf("expected one reconciled completion, got %+v", st)
	}
	m, _ = send(m, tea.ResumeMsg{})
	if m.Timer().State().Sessions != 1 {
		t.Fatal("resume without a new deadline must not complete again")
	}
}

func TestSuspendThenResumeCompletesOnce(t *testing.T) {
	h := newHarness(t)
	m := h.model(func(d *Deps) { d.Profile = timer.ProfileAccelerated })

	m, _ = press(m, " ", "esc")
	deadline := m.Timer().State().Deadline

	m, cmd := press(m, "ctrl+z")
	if cmd == nil || cmd() != tea.Suspend() {
		t.Fatal("ctrl+z must suspend the program")
	}
	if !m.Timer().State().Running {
		t.Fatal("suspending must not pause the timer")
	}

	h.clock.Set(deadline.Add(5 * time.Second))
	m, _ = send(m, tea.ResumeMsg{})
	st := m.Timer().State()
	if st.Sessions != 1 || st.Phase != timer.PhaseShortBreak {
		t.Fatalf("expected completion on resume, got %+v", st)
	}
	m, _ = send(m, tea.ResumeMsg{})
	if m.Timer().State().Sessions != 1 {
		t.Fatal("second resume must not count the deadline again")
	}
}

func TestResetSkipAndProfileKeys(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)

	m, _ = press(m, "d")
	st := m.Timer().State()
	if st.Profile != timer.ProfileAccelerated || st.Remaining != 10 {
		t.Fatalf("expected developer profile, got %+v", st)
	}

	m, _ = press(m, "n")
	st = m.Timer().State()
	if st.Phase != timer.PhaseShortBreak || st.Sessions != 1 || st.Running {
		t.Fatalf("unexpected state after skip: %+v", st)
	}

	m, _ = press(m, " ", "esc")
	h.clock.Advance(2 * time.Second)
	m, _ = press(m, "r")
	st = m.Timer().State()
	if st.Running || st.Remaining != 5 || m.Status.Text != "timer reset" {
		t.Fatalf("unexpected state after reset: %+v status=%q", st, m.Status.Text)
	}

	m, _ = press(m, "d")
	if m.Timer().State().Profile != timer.ProfileStandard || m.Timer().State().Remaining != 5*60 {
		t.Fatalf("expected standard short break, got %+v", m.Timer().State())
	}
}

func TestBoardAddTaskModal(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)

	m, _ = press(m, "2", "a")
	if !m.AddTask.Active {
		t.Fatal("expected add task modal")
	}
	m, _ = press(m, "enter")
	if m.AddTask.Err == "" || len(m.Tasks()) != 0 {
		t.Fatalf("empty title must be rejected, err=%q tasks=%d", m.AddTask.Err, len(m.Tasks()))
	}

	m, _ = press(m, "write docs", "tab", "use **markdown**", "tab", "enter")
	if m.AddTask.Active {
		t.Fatal("expected modal closed after save")
	}
	tasks := m.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "write docs" || tasks[0].Description != "use **markdown**" || tasks[0].Status != model.StatusTodo {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	stored, err := h.store.Tasks(context.Background())
	if err != nil || len(stored) != 1 || stored[0].ID != tasks[0].ID {
		t.Fatalf("expected task persisted, got %+v err=%v", stored, err)
	}

	m, _ = press(m, "a", "throwaway", "esc")
	if m.AddTask.Active || len(m.Tasks()) != 1 {
		t.Fatal("esc must cancel without adding")
	}
}

func TestBoardMoveReorderDelete(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	for _, title := range []string{"one", "two", "three"} {
		var err error
		m, err = m.addTask(title, "")
		if err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}
	m, _ = press(m, "2")
	m.Board.Column, m.Board.Cursor[0] = 0, 0

	m, _ = press(m, "J")
	if col := m.board.Column(model.StatusTodo); col[0].Title != "two" || col[1].Title != "one" {
		t.Fatalf("unexpected order after reorder: %+v", col)
	}
	if sel, _ := m.selectedTask(); sel.Title != "one" {
		t.Fatalf("selection should follow the task, got %q", sel.Title)
	}

	m, _ = press(m, "L")
	if m.Board.Column != 1 || len(m.board.Column(model.StatusDoing)) != 1 {
		t.Fatalf("expected task in doing, column=%d", m.Board.Column)
	}
	m, _ = press(m, "L")
	if !strings.Contains(m.Status.Text, "done") {
		t.Fatalf("expected celebration status, got %q", m.Status.Text)
	}
	m, _ = press(m, "L")
	if len(m.board.Column(model.StatusDone)) != 1 {
		t.Fatal("moving past the last column must be a no-op")
	}

	m, _ = press(m, "x")
	if len(m.Tasks()) != 2 {
		t.Fatalf("expected task deleted, got %+v", m.Tasks())
	}
	stored, _ := h.store.Tasks(context.Background())
	if len(stored) != 2 {
		t.Fatalf("expected deletion persisted, got %+v", stored)
	}

	m, _ = press(m, "h", "h", "j", "j", "j")
	if m.Board.Column != 0 || m.Board.Cursor[0] != 1 {
		t.Fatalf("cursor must clamp to the column, got col=%d cursor=%d", m.Board.Column, m.Board.Cursor[0])
	}
}

func TestMusicURLValidationAndControls(t *testing.T) {
	ctrl := gomock.NewController(t)
	player := mocks.NewMockPlayer(ctrl)
	h := newHarness(t)
	m := h.model(func(d *Deps) { d.Player = player; d.PlayerName = "mpv" })

	m, _ = press(m, "3", "u", "not a video", "enter")
	if m.Music.Err != invalidURLMessage || m.Music.VideoID != "" || !m.Music.Editing {
		t.Fatalf("invalid url must be rejected without change: %+v", m.Music)
	}
	if url, _ := h.store.MusicURL(context.Background()); url != "" {
		t.Fatalf("invalid url must not be persisted, got %q", url)
	}
	m, _ = press(m, "esc")

	player.EXPECT().Load(gomock.Any(), "dQw4w9WgXcQ").Return(nil)
	m, cmd := press(m, "u", "https://youtu.be/dQw4w9WgXcQ?t=3", "enter")
	if m.Music.Editing || m.Music.VideoID != "dQw4w9WgXcQ" || m.Music.State != "playing" {
		t.Fatalf("unexpected music state: %+v", m.Music)
	}
	for _, msg := range runCmd(cmd) {
		m, _ = send(m, msg)
	}
	if url, _ := h.store.MusicURL(context.Background()); url != "https://youtu.be/dQw4w9WgXcQ?t=3" {
		t.Fatalf("expected url persisted, got %q", url)
	}

	player.EXPECT().Pause(gomock.Any()).Return(nil)
	player.EXPECT().SetVolume(gomock.Any(), 70).Return(nil)
	player.EXPECT().SetLoop(gomock.Any(), true).Return(nil)
	player.EXPECT().SeekTo(gomock.Any(), float64(0)).Return(nil)
	player.EXPECT().Play(gomock.Any()).Return(errors.New("ipc gone"))
	for _, k := range []string{"s", "+", "o", "0", "p"} {
		var cmd tea.Cmd
		m, cmd = press(m, k)
		for _, msg := range runCmd(cmd) {
			m, _ = send(m, msg)
		}
	}
	if m.Music.Volume != 70 || !m.Music.Loop {
		t.Fatalf("unexpected music settings: %+v", m.Music)
	}
	if vol, _ := h.store.Volume(context.Background(), 0); vol != 70 {
		t.Fatalf("expected volume persisted, got %d", vol)
	}
	if m.Music.State != "stopped" || !strings.Contains(m.Music.Err, "ipc gone") {
		t.Fatalf("expected play failure surfaced, got %+v", m.Music)
	}
}

func TestPaletteCommands(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)

	m, _ = press(m, "/", "add buy milk | *fresh*", "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed after command")
	}
	tasks := m.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "buy milk" || tasks[0].Description != "*fresh*" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	m, _ = press(m, "/", "move buy milk done", "enter")
	if got, _ := m.board.Get(tasks[0].ID); got.Status != model.StatusDone {
		t.Fatalf("expected task done, got %s", got.Status)
	}

	m, _ = press(m, "/", "theme light", "enter")
	if m.ThemeName != "light" {
		t.Fatalf("expected light theme, got %s", m.ThemeName)
	}
	if saved, ok, _ := h.store.Theme(context.Background()); !ok || saved != "light" {
		t.Fatalf("expected theme persisted, got %q", saved)
	}

	m, _ = press(m, "/", "music nope", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "valid") {
		t.Fatalf("expected invalid url error, got %+v", m.Status)
	}

	m, _ = press(m, "/", "dev", "enter")
	if m.Timer().State().Profile != timer.ProfileAccelerated {
		t.Fatal("expected developer profile")
	}

	m, _ = press(m, "/", "rm missing task", "enter")
	if !m.Status.IsError {
		t.Fatalf("expected not found error, got %+v", m.Status)
	}

	m, _ = press(m, "/", "delete buy milk", "enter")
	if len(m.Tasks()) != 0 {
		t.Fatalf("expected task deleted, got %+v", m.Tasks())
	}
}

func TestPaletteSuggestions(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	m, _ = press(m, "/", "mo")
	got := m.paletteSuggestions()
	if len(got) != 1 || got[0] != "/move" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	m, _ = press(m, "tab")
	if m.Palette.Input != "move " {
		t.Fatalf("expected completion, got %q", m.Palette.Input)
	}
	m, _ = press(m, "esc")
	if m.Palette.Active {
		t.Fatal("expected palette closed")
	}
}

func TestThemeToggleKey(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	m, _ = press(m, "T")
	if m.ThemeName != "light" {
		t.Fatalf("expected light, got %s", m.ThemeName)
	}
	m, _ = press(m, "T")
	if m.ThemeName != "dark" {
		t.Fatalf("expected dark, got %s", m.ThemeName)
	}
}

func TestStoreChangeReloadsBoard(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	if err := h.store.SaveTasks(context.Background(), []model.Task{{ID: "x", Title: "from elsewhere", Status: model.StatusDoing}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	m, _ = send(m, StoreChangedMsg{Keys: []string{storage.KeyTasks, storage.KeySessionCount}})
	tasks := m.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "from elsewhere" {
		t.Fatalf("expected reloaded board, got %+v", tasks)
	}
}

func TestPaneSwitchingAndQuit(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	m, _ = press(m, "tab")
	if m.Focus != views.PaneBoard {
		t.Fatalf("expected board, got %s", m.Focus)
	}
	m, _ = press(m, "tab", "tab")
	if m.Focus != views.PaneTimer {
		t.Fatalf("expected wrap to timer, got %s", m.Focus)
	}
	m, _ = press(m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help overlay")
	}
	m, cmd := press(m, "q")
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	h := newHarness(t)
	m := h.model(nil)
	m, _ = m.addTask("write docs", "")
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"PomoBubby", "Focus 25:00", "To Do (1)", "write docs", "status: all good", "music: none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
