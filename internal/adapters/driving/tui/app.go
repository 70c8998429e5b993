package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// maxProgressWidth caps the progress bar on wide terminals.
const maxProgressWidth = 60

// App is the reader TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles   *styles.Styles
	keymap   *keymap.KeyMap
	status   *status.Bar
	progress progress.Model
	help     help.Model

	// title is the name of the text being read.
	title string

	// generation invalidates scheduled ticks when playback changes.
	generation int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new reader with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	theme := s.Theme()

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		status: status.NewBar(s, km),
		progress: progress.New(
			progress.WithGradient(string(theme.Accent), string(theme.Secondary)),
			progress.WithoutPercentage(),
		),
		help: help.New(),
	}
	a.syncStatus()
	return a, nil
}

// WithContext sets the context for the app. Cancelling it quits the reader.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithTitle sets the title shown above the segments.
func (a *App) WithTitle(title string) *App {
	a.title = title
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	windowTitle := "rsvp"
	if a.title != "" {
		windowTitle = "rsvp - " + a.title
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(windowTitle),
		a.watchContext(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.Tick:
		if msg.Generation != a.generation {
			return a, nil
		}
		if a.ports.Player.Advance() {
			a.syncStatus()
			return a, a.tick()
		}
		a.syncStatus()
		return a, nil

	case messages.SegmentsLoaded:
		a.ports.Player.Load(msg.Segments)
		if msg.Title != "" {
			a.title = msg.Title
		}
		a.err = nil
		return a, a.schedule()

	case messages.IntervalSaved:
		if msg.Err != nil {
			a.setErr(msg.Err)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.setErr(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	player := a.ports.Player

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	case key.Matches(msg, a.keymap.PlayPause):
		player.Toggle()
	case key.Matches(msg, a.keymap.Restart):
		player.Restart()
	case key.Matches(msg, a.keymap.Back):
		player.Step(-1)
	case key.Matches(msg, a.keymap.Forward):
		player.Step(1)
	case key.Matches(msg, a.keymap.First):
		player.Seek(0)
	case key.Matches(msg, a.keymap.Last):
		player.Seek(player.Len() - 1)
	case key.Matches(msg, a.keymap.Faster):
		return tea.Batch(a.changeInterval(-domain.PlaybackIntervalStep), a.schedule())
	case key.Matches(msg, a.keymap.Slower):
		return tea.Batch(a.changeInterval(domain.PlaybackIntervalStep), a.schedule())
	default:
		return nil
	}

	return a.schedule()
}

// schedule drops pending ticks and starts a new one if playback is running.
func (a *App) schedule() tea.Cmd {
	a.generation++
	a.syncStatus()
	if a.ports.Player.State() != domain.PresentationPresenting {
		return nil
	}
	return a.tick()
}

func (a *App) tick() tea.Cmd {
	gen := a.generation
	return tea.Tick(a.ports.Player.Interval(), func(t time.Time) tea.Msg {
		return messages.Tick{Generation: gen, Time: t}
	})
}

func (a *App) changeInterval(delta time.Duration) tea.Cmd {
	interval := a.ports.Player.SetInterval(a.ports.Player.Interval() + delta)
	a.syncStatus()

	settings := a.ports.Settings
	if settings == nil {
		return nil
	}
	return func() tea.Msg {
		saved, err := settings.SetPlaybackInterval(interval)
		return messages.IntervalSaved{Interval: saved, Err: err}
	}
}

func (a *App) watchContext() tea.Cmd {
	ctx := a.ctx
	if ctx.Done() == nil {
		return nil
	}
	return func() tea.Msg {
		<-ctx.Done()
		return messages.Quit{}
	}
}

func (a *App) setErr(err error) {
	a.err = err
	if err != nil {
		a.status.SetMessage(err.Error())
	} else {
		a.status.SetMessage("")
	}
}

func (a *App) syncStatus() {
	player := a.ports.Player
	a.status.SetPlayback(player.State(), player.Index()+1, player.Len(), player.Interval())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	display := a.ports.Player.Display()

	text := a.styles.Placeholder.Render(display.Text)
	if display.Label == "Segment" {
		text = a.styles.Segment.Render(display.Text)
	}

	parts := []string{}
	if a.title != "" {
		parts = append(parts, a.styles.Title.Render(a.title), "")
	}
	parts = append(parts,
		a.styles.Label.Render(display.Label),
		a.styles.Frame.Width(a.progress.Width+2).Render(text),
		a.progress.ViewAs(display.Progress/100),
	)
	if a.help.ShowAll {
		parts = append(parts, "", a.help.View(a.keymap))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	body = lipgloss.Place(a.width, max(a.height-1, 0), lipgloss.Center, lipgloss.Center, body)

	return body + "\n" + a.status.View()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.progress.Width = max(min(width-8, maxProgressWidth), 10)
	a.help.Width = width
	a.status.SetWidth(width)
}

// Title returns the title of the text being read.
func (a *App) Title() string {
	return a.title
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Run starts the reader and blocks until it exits.
func Run(ctx context.Context, ports *Ports, title string) error {
	app, err := NewApp(ports)
	if err != nil {
		return err
	}
	app = app.WithContext(ctx).WithTitle(title)

	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("running reader: %w", err)
	}
	return nil
}
