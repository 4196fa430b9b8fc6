package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"courtside/internal/api"
)

type refreshPhase int

const (
	refreshIdle refreshPhase = iota
	refreshInFlight
	coolingDown
)

// refreshState owns the manual refresh action for "today" mode. cooldown is
// the seconds remaining before another attempt is permitted; it is seeded
// only by a rate-limited rejection, decremented once per second by the tick
// below, and cleared by a successful refresh or by leaving "today".
type refreshState struct {
	phase    refreshPhase
	cooldown int
	notice   string
}

func (r *refreshState) reset() {
	r.phase = refreshIdle
	r.cooldown = 0
	r.notice = ""
}

// attemptRefresh starts a refresh if one is permitted. The guard lives here
// at the controller boundary, not in the key handling: while cooling down or
// already in flight the attempt is a no-op and no request is issued.
func (m *Model) attemptRefresh() tea.Cmd {
	if !m.fetch.mode.Refreshable() {
		return nil
	}
	if m.refresh.phase != refreshIdle {
		return nil
	}
	m.refresh.phase = refreshInFlight
	m.refresh.notice = ""

	client := m.client
	return func() tea.Msg {
		games, err := client.RefreshToday(context.Background())
		return refreshMsg{games: games, err: err}
	}
}

// applyRefresh handles the refresh result. Success replaces the collection
// and clears any cooldown. A rate-limited rejection seeds the cooldown from
// the server's hint and arms the 1-second tick. Every other failure leaves
// the action immediately retryable.
func (m *Model) applyRefresh(msg refreshMsg) tea.Cmd {
	if m.refresh.phase != refreshInFlight {
		// Result for a refresh that no longer owns the control, e.g. the
		// user switched to "previous" while it was in flight.
		return nil
	}
	if msg.err == nil {
		m.refresh.reset()
		m.fetch.phase = loadReady
		m.fetch.errMsg = ""
		m.fetch.games = msg.games
		m.refresh.notice = "scores refreshed"
		return nil
	}
	if rl, ok := api.AsRateLimit(msg.err); ok {
		m.refresh.phase = coolingDown
		m.refresh.cooldown = rl.CooldownSeconds()
		m.refresh.notice = rl.Detail
		if m.refresh.notice == "" {
			m.refresh.notice = "rate limited"
		}
		return cooldownTick()
	}
	m.refresh.phase = refreshIdle
	m.refresh.cooldown = 0
	m.refresh.notice = msg.err.Error()
	return nil
}

// applyCooldownTick decrements the counter by one and re-arms the tick only
// while it is still positive, so the periodic task dies with the cooldown.
func (m *Model) applyCooldownTick() tea.Cmd {
	if m.refresh.phase != coolingDown {
		// Stray wake-up after a mode switch or reset; let the timer die.
		return nil
	}
	m.refresh.cooldown--
	if m.refresh.cooldown <= 0 {
		m.refresh.cooldown = 0
		m.refresh.phase = refreshIdle
		m.refresh.notice = ""
		return nil
	}
	return cooldownTick()
}

func cooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return cooldownTickMsg(t) })
}
