package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"courtside/internal/api"
)

type loadPhase int

const (
	loadIdle loadPhase = iota
	loadPending
	loadReady
	loadFailed
)

// fetchState owns the displayed collection and the loading status for the
// active mode. The collection is only ever wholesale-replaced by a
// successful load; a failed load keeps the previous games visible so a
// transient error never blanks the screen.
type fetchState struct {
	mode   api.Mode
	phase  loadPhase
	games  []api.Game
	errMsg string

	// seq is the monotonically increasing request token. Each load captures
	// the current value; a response carrying an older token is stale (the
	// user has since switched modes) and is discarded, so a slow response
	// for an abandoned mode can never overwrite the newer listing.
	seq int
}

// setMode switches the active mode and issues a load for it. Switching away
// from the refreshable mode also discards any refresh cooldown, since the
// refresh action does not exist outside "today".
func (m *Model) setMode(mode api.Mode) tea.Cmd {
	if mode == m.fetch.mode {
		return nil
	}
	m.fetch.mode = mode
	m.selected = 0
	if !mode.Refreshable() {
		m.refresh.reset()
	}
	return tea.Batch(m.startLoad(), m.spin.Tick)
}

// startLoad issues one read request for the current mode.
func (m *Model) startLoad() tea.Cmd {
	m.fetch.seq++
	m.fetch.phase = loadPending
	m.fetch.errMsg = ""

	seq := m.fetch.seq
	mode := m.fetch.mode
	client := m.client
	return func() tea.Msg {
		games, err := client.Games(context.Background(), mode)
		return gamesMsg{mode: mode, seq: seq, games: games, err: err}
	}
}

func (m *Model) applyGames(msg gamesMsg) {
	if msg.seq != m.fetch.seq {
		// Stale response from a mode the user has already left.
		return
	}
	if msg.err != nil {
		m.fetch.phase = loadFailed
		m.fetch.errMsg = msg.err.Error()
		return
	}
	m.fetch.phase = loadReady
	m.fetch.errMsg = ""
	m.fetch.games = msg.games
	if m.selected >= len(m.visibleGames()) {
		m.selected = 0
	}
}

// visibleGames applies the fuzzy team filter to the displayed collection.
func (m *Model) visibleGames() []api.Game {
	if m.filter == "" {
		return m.fetch.games
	}
	var out []api.Game
	for _, g := range m.fetch.games {
		if fuzzy.MatchFold(m.filter, g.AwayTeam) || fuzzy.MatchFold(m.filter, g.HomeTeam) {
			out = append(out, g)
		}
	}
	return out
}
