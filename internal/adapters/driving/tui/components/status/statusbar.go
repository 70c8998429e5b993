// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Bar displays playback state, position, speed and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    domain.PresentationState
	position int
	total    int
	interval time.Duration
	message  string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		state:    domain.PresentationIdle,
		interval: domain.DefaultPlaybackInterval,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		return s.styles.Error.Render("Error: " + s.message)
	}

	parts := []string{stateIcon(s.state) + " " + s.state.String()}
	if s.total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.position, s.total))
	}
	parts = append(parts, fmt.Sprintf("%dms", s.interval.Milliseconds()))

	return s.styles.Muted.Render(strings.Join(parts, "  "))
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func stateIcon(state domain.PresentationState) string {
	switch state {
	case domain.PresentationPresenting:
		return "▶"
	case domain.PresentationPaused:
		return "⏸"
	case domain.PresentationFinished:
		return "■"
	default:
		return "○"
	}
}

// SetPlayback updates the displayed state, 1-based position, total and interval.
func (s *Bar) SetPlayback(state domain.PresentationState, position, total int, interval time.Duration) {
	s.state = state
	s.position = position
	s.total = total
	s.interval = interval
}

// State returns the displayed presentation state.
func (s *Bar) State() domain.PresentationState {
	return s.state
}

// SetMessage sets an error message. An empty message clears it.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
