package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"courtside/internal/api"
)

// detailState owns the recap screen for one game. It has its own load
// status so a failed recap fetch never disturbs the games listing behind it.
type detailState struct {
	phase  loadPhase
	game   api.Game
	recap  *api.GameSummary
	cached bool
	errMsg string
	vp     viewport.Model
	sized  bool
}

func (d *detailState) resize(w, h int) {
	vw, vh := w-6, h-10
	if vw < 20 {
		vw = 20
	}
	if vh < 5 {
		vh = 5
	}
	if !d.sized {
		d.vp = viewport.New(vw, vh)
		d.sized = true
		return
	}
	d.vp.Width = vw
	d.vp.Height = vh
}

// openDetail fetches the recap for the selected game and switches screens.
func (m *Model) openDetail() tea.Cmd {
	games := m.visibleGames()
	if m.selected < 0 || m.selected >= len(games) {
		return nil
	}
	g := games[m.selected]
	m.screen = detailScreen
	m.detail.phase = loadPending
	m.detail.game = g
	m.detail.recap = nil
	m.detail.errMsg = ""
	if !m.detail.sized {
		m.detail.resize(m.w, m.h)
	}

	recaps := m.recaps
	return func() tea.Msg {
		s, cached, err := recaps.Get(context.Background(), g.ID)
		return recapMsg{gameID: g.ID, recap: s, cached: cached, err: err}
	}
}

func (m *Model) applyRecap(msg recapMsg) {
	if m.screen != detailScreen || msg.gameID != m.detail.game.ID {
		// The user already backed out or opened another game.
		return
	}
	if msg.err != nil {
		m.detail.phase = loadFailed
		if errors.Is(msg.err, api.ErrSummaryNotFound) {
			m.detail.errMsg = "Summary not found for this game"
		} else {
			m.detail.errMsg = msg.err.Error()
		}
		return
	}
	m.detail.phase = loadReady
	m.detail.recap = msg.recap
	m.detail.cached = msg.cached
	m.detail.vp.SetContent(msg.recap.Summary)
	m.detail.vp.GotoTop()
}

func (m *Model) closeDetail() {
	m.screen = listScreen
	m.detail.phase = loadIdle
	m.detail.recap = nil
	m.detail.errMsg = ""
}

// generatedAtLabel renders the recap timestamp as a relative time when it
// parses, and verbatim otherwise. The service emits bare ISO timestamps
// without a zone.
func generatedAtLabel(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return humanize.Time(t)
		}
	}
	return raw
}
