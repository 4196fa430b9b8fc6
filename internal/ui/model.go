package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"courtside/internal/api"
	"courtside/internal/config"
)

// gamesClient is the slice of the API client the dashboard drives.
type gamesClient interface {
	Games(ctx context.Context, mode api.Mode) ([]api.Game, error)
	RefreshToday(ctx context.Context) ([]api.Game, error)
}

// recapSource serves detail-view recaps (read-through cache in production).
type recapSource interface {
	Get(ctx context.Context, gameID string) (*api.GameSummary, bool, error)
}

type screen int

const (
	listScreen screen = iota
	detailScreen
)

// Messages. Network results and the cooldown wake-up all come back through
// the event loop; nothing blocks in Update.

type gamesMsg struct {
	mode  api.Mode
	seq   int
	games []api.Game
	err   error
}

type refreshMsg struct {
	games []api.Game
	err   error
}

type recapMsg struct {
	gameID string
	recap  *api.GameSummary
	cached bool
	err    error
}

type cooldownTickMsg time.Time

type Model struct {
	cfg    *config.Config
	client gamesClient
	recaps recapSource
	th     Theme
	w, h   int

	fetch   fetchState
	refresh refreshState
	detail  detailState

	screen   screen
	selected int

	filterOn    bool
	filterInput textinput.Model
	filter      string

	spin     spinner.Model
	showHelp bool
}

func New(cfg *config.Config, client gamesClient, recaps recapSource) *Model {
	mode := api.Mode(cfg.UI.Mode)

	filter := textinput.New()
	filter.Placeholder = "Filter teams..."

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))

	return &Model{
		cfg:         cfg,
		client:      client,
		recaps:      recaps,
		th:          defaultTheme(),
		fetch:       fetchState{mode: mode},
		filterInput: filter,
		spin:        spin,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startLoad(), m.spin.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.detail.resize(m.w, m.h)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case gamesMsg:
		m.applyGames(msg)
		return m, nil

	case refreshMsg:
		return m, m.applyRefresh(msg)

	case recapMsg:
		m.applyRecap(msg)
		return m, nil

	case cooldownTickMsg:
		return m, m.applyCooldownTick()

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// busy reports whether any request is in flight, which is the only time the
// spinner keeps ticking.
func (m *Model) busy() bool {
	return m.fetch.phase == loadPending || m.refresh.phase == refreshInFlight || m.detail.phase == loadPending
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}
	if m.filterOn {
		return m.handleFilterKey(msg)
	}
	if m.screen == detailScreen {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true

	case "1":
		return m, m.setMode(api.ModePrevious)

	case "2":
		return m, m.setMode(api.ModeToday)

	case "tab":
		if m.fetch.mode == api.ModeToday {
			return m, m.setMode(api.ModePrevious)
		}
		return m, m.setMode(api.ModeToday)

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.visibleGames())-1 {
			m.selected++
		}

	case "/":
		m.filterOn = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "r":
		return m, tea.Batch(m.attemptRefresh(), m.spin.Tick)

	case "enter":
		return m, tea.Batch(m.openDetail(), m.spin.Tick)
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterOn = false
		m.filter = ""
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.selected = 0
		return m, nil

	case "enter":
		m.filterOn = false
		m.filter = m.filterInput.Value()
		m.filterInput.Blur()
		m.selected = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// viewportKeys are forwarded to the recap viewport for scrolling.
func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.closeDetail()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail.vp, cmd = m.detail.vp.Update(msg)
	return m, cmd
}
