package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/notify"
	"github.com/sandeepkv93/pomobubby/internal/scheduler"
	"github.com/sandeepkv93/pomobubby/internal/storage"
	"github.com/sandeepkv93/pomobubby/internal/timer"
	"github.com/sandeepkv93/pomobubby/internal/video"
	"github.com/sandeepkv93/pomobubby/internal/views"
)

const (
	wakeupKindDeadline = "phase_deadline"
	defaultTick        = 250 * time.Millisecond
	volumeStep         = 10
	ioTimeout          = 3 * time.Second
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Timer   string
	Board   string
	Music   string
	Help    string
	Quit    string
	Suspend string
}

type BoardState struct {
	Column int
	Cursor [3]int
}

type AddTaskState struct {
	Active bool
	// Field is 0 for the title input and 1 for the description.
	Field int
	Err   string
}

type MusicState struct {
	URL     string
	VideoID string
	// State is one of stopped, cued, playing, paused.
	State   string
	Volume  int
	Loop    bool
	Editing bool
	Err     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Deps are the collaborators a Model drives. Zero values fall back to no-op
// implementations.
type Deps struct {
	Context      context.Context
	Timer        timer.Config
	Profile      timer.Profile
	Clock        timer.Clock
	Store        *storage.State
	Watcher      storage.Watcher
	Scheduler    *scheduler.Engine
	Player       video.Player
	PlayerName   string
	Notifier     notify.Notifier
	Signaler     notify.Signaler
	Logger       zerolog.Logger
	Theme        string
	TickInterval time.Duration
	Volume       int
	Loop         bool
}

type Model struct {
	Focus            views.Pane
	Board            BoardState
	AddTask          AddTaskState
	Music            MusicState
	Palette          CommandPaletteState
	HelpVisible      bool
	PermissionPrompt bool
	Permission       notify.Permission
	ThemeName        string
	Status           StatusBar
	Keys             GlobalKeyMap
	Quitting         bool
	LastError        error

	timer    *timer.Controller
	board    *model.Board
	tickGen  int
	wakeupID string
	width    int
	failures int

	ctx          context.Context
	store        *storage.State
	watcher      storage.Watcher
	changes      <-chan storage.Change
	scheduler    *scheduler.Engine
	player       video.Player
	playerName   string
	notifier     notify.Notifier
	signaler     notify.Signaler
	log          zerolog.Logger
	tickInterval time.Duration

	titleInput    textinput.Model
	descArea      textarea.Model
	urlInput      textinput.Model
	commandInput  textinput.Model
	timerProgress progress.Model
	helpModel     help.Model
}

type TickMsg struct {
	Gen int
	At  time.Time
}

type WakeupMsg struct {
	Event scheduler.Wakeup
}

type StoreChangedMsg struct {
	Keys []string
}

type MusicResultMsg struct {
	Action string
	Err    error
}

// EffectErrMsg reports a failed fire-and-forget completion effect.
type EffectErrMsg struct {
	Source string
	Err    error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// NewModel builds the model and loads persisted state from deps.Store. Load problems are
// logged and surfaced on the status line; the app still starts.
func NewModel(deps Deps) Model {
	m := Model{
		Focus:      views.PaneTimer,
		Permission: notify.PermissionDefault,
		ThemeName:  storage.ThemeDark,
		Music:      MusicState{State: "stopped", Volume: clampPercent(deps.Volume), Loop: deps.Loop},
		Keys: GlobalKeyMap{
			Timer:   "1",
			Board:   "2",
			Music:   "3",
			Help:    "?",
			Quit:    "q",
			Suspend: "ctrl+z",
		},
		ctx:          deps.Context,
		store:        deps.Store,
		watcher:      deps.Watcher,
		scheduler:    deps.Scheduler,
		player:       deps.Player,
		playerName:   deps.PlayerName,
		notifier:     deps.Notifier,
		signaler:     deps.Signaler,
		log:          deps.Logger.With().Str("component", "tui").Logger(),
		tickInterval: deps.TickInterval,
		board:        model.NewBoard(),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.player == nil {
		m.player = video.NoopPlayer{}
	}
	if m.playerName == "" {
		m.playerName = "none"
	}
	if m.notifier == nil {
		m.notifier = notify.NoopNotifier{}
	}
	if m.signaler == nil {
		m.signaler = notify.BellSignaler{}
	}
	if m.tickInterval <= 0 {
		m.tickInterval = defaultTick
	}
	cfg := deps.Timer
	if cfg.Validate() != nil {
		cfg = timer.DefaultConfig()
	}

	sessions := m.loadPersisted(deps.Theme)
	m.timer = timer.NewController(cfg, deps.Clock, deps.Profile, sessions)
	m.startWatch()

	m.initBubbleComponents()
	return m
}

// Timer exposes the controller for callers that need to read the timer state.
func (m Model) Timer() *timer.Controller {
	return m.timer
}

// Tasks returns a copy of the board in stored order.
func (m Model) Tasks() []model.Task {
	return m.board.Tasks()
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "What needs doing?"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 48

	m.descArea = textarea.New()
	m.descArea.Placeholder = "Description (markdown, optional)"
	m.descArea.ShowLineNumbers = false
	m.descArea.SetWidth(52)
	m.descArea.SetHeight(4)

	m.urlInput = textinput.New()
	m.urlInput.Prompt = "url> "
	m.urlInput.Placeholder = "https://www.youtube.com/watch?v=..."
	m.urlInput.CharLimit = 512
	m.urlInput.Width = 44

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.applyTheme()
}

func (m *Model) applyTheme() {
	t := views.ThemeFor(m.ThemeName)
	m.timerProgress = progress.New(progress.WithGradient(t.ProgressFrom, t.ProgressTo), progress.WithoutPercentage())
	m.timerProgress.Width = 40
}
