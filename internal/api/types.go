package api

import (
	"fmt"
	"strings"
)

// Mode selects which collection of games the service returns.
type Mode string

const (
	ModePrevious Mode = "previous"
	ModeToday    Mode = "today"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "previous":
		return ModePrevious, nil
	case "today":
		return ModeToday, nil
	}
	return "", fmt.Errorf("unknown mode: %q (want previous or today)", s)
}

// Refreshable reports whether the mode supports the manual score refresh.
func (m Mode) Refreshable() bool { return m == ModeToday }

// Game is one row of a games listing. Scores are pointers because the
// service omits them until a game has started.
type Game struct {
	ID         string `json:"id"`
	AwayTeam   string `json:"awayTeam"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeamID string `json:"awayTeamId,omitempty"`
	HomeTeamID string `json:"homeTeamId,omitempty"`
	AwayScore  *int   `json:"awayScore"`
	HomeScore  *int   `json:"homeScore"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// GameSummary is the generated narrative for one game. Summary may contain
// embedded newlines and is rendered verbatim.
type GameSummary struct {
	GameID      string `json:"gameId"`
	Summary     string `json:"summary"`
	GeneratedAt string `json:"generatedAt"`
	AwayTeam    string `json:"awayTeam,omitempty"`
	HomeTeam    string `json:"homeTeam,omitempty"`
	AwayTeamID  string `json:"awayTeamId,omitempty"`
	HomeTeamID  string `json:"homeTeamId,omitempty"`
}

// Started reports whether both scores are present.
func (g Game) Started() bool { return g.AwayScore != nil && g.HomeScore != nil }

// DisplayStatus normalizes the free-form status tag for display by replacing
// separator characters with spaces ("in_progress" -> "in progress").
func DisplayStatus(status string) string {
	r := strings.NewReplacer("_", " ", "-", " ")
	return r.Replace(status)
}

// LogoURL derives the CDN logo location for a team id. Empty when the id is
// unknown; callers fall back to text-only display.
func LogoURL(cdnBase, teamID string) string {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return ""
	}
	return fmt.Sprintf("%s/logos/%s/global/L/logo.svg", strings.TrimRight(cdnBase, "/"), teamID)
}
