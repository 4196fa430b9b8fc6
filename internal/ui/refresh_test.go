package ui

import (
	"errors"
	"strings"
	"testing"

	"courtside/internal/api"
)

func TestAttemptRefreshIssuesOneRequest(t *testing.T) {
	client := &stubClient{refreshGames: []api.Game{game("201", "Lakers", "Warriors")}}
	m := newTestModel(client, nil)

	cmd := m.attemptRefresh()
	if cmd == nil {
		t.Fatal("idle refresh in today mode should issue a request")
	}
	if m.refresh.phase != refreshInFlight {
		t.Fatalf("phase = %v, want refreshInFlight", m.refresh.phase)
	}

	// A second attempt while in flight must not issue anything.
	if second := m.attemptRefresh(); second != nil {
		t.Error("attempt while refreshing should be a no-op")
	}

	msg := cmd().(refreshMsg)
	if client.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", client.refreshCalls)
	}
	_ = m.applyRefresh(msg)
}

func TestAttemptRefreshGuardedOutsideToday(t *testing.T) {
	client := &stubClient{}
	m := newTestModel(client, nil)
	m.fetch.mode = api.ModePrevious

	if cmd := m.attemptRefresh(); cmd != nil {
		t.Error("refresh must not exist outside today mode")
	}
	if client.refreshCalls != 0 {
		t.Error("request was issued")
	}
}

func TestAttemptRefreshGuardedWhileCoolingDown(t *testing.T) {
	client := &stubClient{}
	m := newTestModel(client, nil)
	m.refresh.phase = coolingDown
	m.refresh.cooldown = 30

	if cmd := m.attemptRefresh(); cmd != nil {
		t.Error("attempt during cooldown should be a no-op")
	}
	if client.refreshCalls != 0 {
		t.Error("request was issued during cooldown")
	}
}

func TestRefreshSuccessReplacesListAndClearsCooldown(t *testing.T) {
	m := newTestModel(nil, nil)
	m.fetch.games = []api.Game{game("201", "Lakers", "Warriors")}
	m.refresh.phase = refreshInFlight
	m.refresh.cooldown = 42 // must be cleared no matter what it was

	fresh := []api.Game{game("201", "Lakers", "Warriors"), game("203", "Nuggets", "Suns")}
	cmd := m.applyRefresh(refreshMsg{games: fresh})

	if cmd != nil {
		t.Error("success should not arm a tick")
	}
	if m.refresh.phase != refreshIdle || m.refresh.cooldown != 0 {
		t.Errorf("refresh state after success: %+v", m.refresh)
	}
	if len(m.fetch.games) != 2 {
		t.Errorf("list not replaced: %+v", m.fetch.games)
	}
}

func TestRateLimitSeedsCooldownAndArmsTick(t *testing.T) {
	m := newTestModel(nil, nil)
	m.fetch.games = []api.Game{game("201", "Lakers", "Warriors")}
	m.refresh.phase = refreshInFlight

	err := &api.RateLimitError{Detail: "Too many requests", RetryAfterSeconds: 1800}
	cmd := m.applyRefresh(refreshMsg{err: err})

	if m.refresh.phase != coolingDown || m.refresh.cooldown != 1800 {
		t.Errorf("refresh state after 429: %+v", m.refresh)
	}
	if m.refresh.notice != "Too many requests" {
		t.Errorf("notice = %q", m.refresh.notice)
	}
	if cmd == nil {
		t.Error("429 should arm the cooldown tick")
	}
	if len(m.fetch.games) != 1 {
		t.Errorf("list must be unchanged on 429: %+v", m.fetch.games)
	}

	status := m.renderStatusLine()
	if !strings.Contains(status, "Too many requests") || !strings.Contains(status, "30:00") {
		t.Errorf("status line = %q", status)
	}
}

func TestRateLimitWithoutHintCoolsForOneSecond(t *testing.T) {
	m := newTestModel(nil, nil)
	m.refresh.phase = refreshInFlight

	cmd := m.applyRefresh(refreshMsg{err: &api.RateLimitError{}})
	if m.refresh.cooldown != 1 {
		t.Errorf("cooldown = %d, want floor of 1", m.refresh.cooldown)
	}
	if m.refresh.notice != "rate limited" {
		t.Errorf("notice = %q", m.refresh.notice)
	}
	if cmd == nil {
		t.Error("tick not armed")
	}
}

func TestGenericRefreshFailureIsRetryable(t *testing.T) {
	m := newTestModel(nil, nil)
	m.fetch.games = []api.Game{game("201", "Lakers", "Warriors")}
	m.refresh.phase = refreshInFlight

	cmd := m.applyRefresh(refreshMsg{err: errors.New("bad gateway")})
	if cmd != nil {
		t.Error("generic failure must not arm a tick")
	}
	if m.refresh.phase != refreshIdle || m.refresh.cooldown != 0 {
		t.Errorf("refresh state: %+v", m.refresh)
	}
	if m.refresh.notice != "bad gateway" {
		t.Errorf("notice = %q", m.refresh.notice)
	}
	if len(m.fetch.games) != 1 {
		t.Error("list must be unchanged on failure")
	}
	if m.attemptRefresh() == nil {
		t.Error("refresh should be immediately retryable")
	}
}

func TestCooldownDecrementsToExactlyZero(t *testing.T) {
	m := newTestModel(nil, nil)
	m.refresh.phase = coolingDown
	m.refresh.cooldown = 2

	if cmd := m.applyCooldownTick(); cmd == nil {
		t.Error("tick should re-arm at cooldown 1")
	}
	if m.refresh.cooldown != 1 {
		t.Errorf("cooldown = %d, want 1", m.refresh.cooldown)
	}

	if cmd := m.applyCooldownTick(); cmd != nil {
		t.Error("tick must not re-arm once the cooldown reaches zero")
	}
	if m.refresh.cooldown != 0 || m.refresh.phase != refreshIdle {
		t.Errorf("refresh state at zero: %+v", m.refresh)
	}

	// A late tick after expiry neither goes negative nor re-arms.
	if cmd := m.applyCooldownTick(); cmd != nil {
		t.Error("stray tick re-armed")
	}
	if m.refresh.cooldown != 0 {
		t.Errorf("cooldown = %d, want 0", m.refresh.cooldown)
	}
}

func TestRefreshResultAfterLeavingTodayIsDropped(t *testing.T) {
	m := newTestModel(nil, nil)
	m.refresh.phase = refreshInFlight
	_ = m.setMode(api.ModePrevious) // resets refresh state

	cmd := m.applyRefresh(refreshMsg{games: []api.Game{game("203", "Nuggets", "Suns")}})
	if cmd != nil {
		t.Error("dropped result should not schedule anything")
	}
	if len(m.fetch.games) != 0 {
		t.Errorf("dropped refresh result replaced the list: %+v", m.fetch.games)
	}
}

func TestFormatCooldown(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		1:    "0:01",
		59:   "0:59",
		60:   "1:00",
		1800: "30:00",
		3661: "1:01:01",
	}
	for in, want := range cases {
		if got := formatCooldown(in); got != want {
			t.Errorf("formatCooldown(%d) = %q, want %q", in, got, want)
		}
	}
}
