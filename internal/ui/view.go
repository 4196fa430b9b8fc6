package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"courtside/internal/api"
)

func (m *Model) View() string {
	if m.w == 0 {
		m.w = 100
	}
	if m.h == 0 {
		m.h = 30
	}
	if m.showHelp {
		return m.th.border.Render(m.renderHelp())
	}

	header := m.th.border.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		m.th.title.Render("courtside • NBA game recaps"), "  ", m.renderTabs()))

	var body string
	if m.screen == detailScreen {
		body = m.th.border.Width(m.w - 2).Render(m.renderDetail())
	} else {
		body = m.th.border.Width(m.w - 2).Render(m.renderList())
	}

	footer := m.th.border.Render(m.th.footer.Render(m.footerText()))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderTabs() string {
	labels := []struct {
		name string
		mode api.Mode
	}{
		{"Previous", api.ModePrevious},
		{"Today", api.ModeToday},
	}
	var sb strings.Builder
	for i, it := range labels {
		style := m.th.tabInactive
		if it.mode == m.fetch.mode {
			style = m.th.tabActive
		}
		sb.WriteString(style.Render(it.name))
		if i < len(labels)-1 {
			sb.WriteString("  •  ")
		}
	}
	return sb.String()
}

func (m *Model) renderList() string {
	var sb strings.Builder

	if m.filterOn {
		sb.WriteString(m.filterInput.View())
		sb.WriteString("\n")
	} else if m.filter != "" {
		sb.WriteString(m.th.label.Render("filter: "+m.filter) + "\n")
	}

	sb.WriteString(m.renderStatusLine())
	sb.WriteString("\n")

	games := m.visibleGames()
	if len(games) == 0 {
		if m.fetch.phase == loadReady {
			sb.WriteString(m.th.label.Render("(no games)"))
		}
		return sb.String()
	}

	sb.WriteString(m.th.head.Render(fmt.Sprintf("%-32s  %-9s  %-14s  %s", "MATCHUP", "SCORE", "STATUS", "DATE")))
	sb.WriteString("\n")
	maxRows := m.h - 12
	if maxRows < 3 {
		maxRows = len(games)
	}
	for i, g := range games {
		line := fmt.Sprintf("%-32s  %-9s  %-14s  %s",
			matchup(g), scoreline(g), api.DisplayStatus(g.Status), g.Date)
		if i == m.selected {
			line = m.th.rowSelected.Render("> " + line)
		} else {
			line = m.th.row.Render("  " + line)
		}
		sb.WriteString(line + "\n")
		if i+1 >= maxRows {
			break
		}
	}
	return sb.String()
}

// renderStatusLine shows the fetch status, the refresh state, and any
// notice, in that priority order.
func (m *Model) renderStatusLine() string {
	switch {
	case m.fetch.phase == loadPending:
		return m.spin.View() + m.th.label.Render(" loading "+string(m.fetch.mode)+" games...")
	case m.refresh.phase == refreshInFlight:
		return m.spin.View() + m.th.label.Render(" refreshing scores...")
	case m.fetch.phase == loadFailed:
		return m.th.errText.Render(m.fetch.errMsg)
	case m.refresh.phase == coolingDown:
		return m.th.notice.Render(fmt.Sprintf("%s • refresh available in %s",
			m.refresh.notice, formatCooldown(m.refresh.cooldown)))
	case m.refresh.notice != "":
		return m.th.notice.Render(m.refresh.notice)
	}
	return m.th.label.Render(string(m.fetch.mode) + " games")
}

func (m *Model) renderDetail() string {
	var sb strings.Builder
	g := m.detail.game
	sb.WriteString(m.th.title.Render(matchup(g)))
	if g.Status != "" {
		sb.WriteString("  " + m.th.label.Render(api.DisplayStatus(g.Status)))
	}
	sb.WriteString("\n")

	if logo := api.LogoURL(m.cfg.CDN.LogoBaseURL, g.AwayTeamID); logo != "" {
		sb.WriteString(m.th.label.Render("away logo: "+logo) + "\n")
	}
	if logo := api.LogoURL(m.cfg.CDN.LogoBaseURL, g.HomeTeamID); logo != "" {
		sb.WriteString(m.th.label.Render("home logo: "+logo) + "\n")
	}

	switch m.detail.phase {
	case loadPending:
		sb.WriteString("\n" + m.spin.View() + m.th.label.Render(" fetching recap..."))
	case loadFailed:
		sb.WriteString("\n" + m.th.errText.Render(m.detail.errMsg))
	case loadReady:
		if when := generatedAtLabel(m.detail.recap.GeneratedAt); when != "" {
			label := "generated " + when
			if m.detail.cached {
				label += " (cached)"
			}
			sb.WriteString(m.th.label.Render(label) + "\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.detail.vp.View())
	}
	return sb.String()
}

func (m *Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(m.th.head.Render("Help") + "\n")
	sb.WriteString("Tabs: 1 Previous • 2 Today • Tab toggle\n")
	sb.WriteString("Nav: j/k up/down • Enter recap • Esc back\n")
	sb.WriteString("Filter: / to enter; Enter to apply; Esc to clear\n")
	sb.WriteString("Refresh: r re-fetch today's scores (server may impose a wait)\n")
	sb.WriteString("Quit: q\n")
	return sb.String()
}

func (m *Model) footerText() string {
	if m.screen == detailScreen {
		return "j/k scroll • Esc back • q quit"
	}
	if m.fetch.mode.Refreshable() {
		return "1 Previous • 2 Today • j/k nav • Enter recap • r refresh • / filter • ? help • q quit"
	}
	return "1 Previous • 2 Today • j/k nav • Enter recap • / filter • ? help • q quit"
}

func matchup(g api.Game) string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

func scoreline(g api.Game) string {
	if !g.Started() {
		return "-"
	}
	return fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
}

// formatCooldown renders seconds as m:ss (or h:mm:ss for long waits).
func formatCooldown(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h, rem := secs/3600, secs%3600
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, rem/60, rem%60)
	}
	return fmt.Sprintf("%d:%02d", rem/60, rem%60)
}
