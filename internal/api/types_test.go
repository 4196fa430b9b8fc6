package api

import "testing"

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Today "); err != nil || m != ModeToday {
		t.Errorf("ParseMode(Today) = %v, %v", m, err)
	}
	if m, err := ParseMode("previous"); err != nil || m != ModePrevious {
		t.Errorf("ParseMode(previous) = %v, %v", m, err)
	}
	if _, err := ParseMode("yesterday"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRefreshable(t *testing.T) {
	if ModePrevious.Refreshable() {
		t.Error("previous must not be refreshable")
	}
	if !ModeToday.Refreshable() {
		t.Error("today must be refreshable")
	}
}

func TestDisplayStatus(t *testing.T) {
	cases := map[string]string{
		"in_progress": "in progress",
		"half-time":   "half time",
		"finished":    "finished",
		"":            "",
	}
	for in, want := range cases {
		if got := DisplayStatus(in); got != want {
			t.Errorf("DisplayStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogoURL(t *testing.T) {
	got := LogoURL("https://cdn.nba.com", "1610612744")
	want := "https://cdn.nba.com/logos/1610612744/global/L/logo.svg"
	if got != want {
		t.Errorf("LogoURL = %q, want %q", got, want)
	}
	if LogoURL("https://cdn.nba.com/", "x") != "https://cdn.nba.com/logos/x/global/L/logo.svg" {
		t.Error("trailing slash on base not trimmed")
	}
	if LogoURL("https://cdn.nba.com", " ") != "" {
		t.Error("blank team id should yield empty URL")
	}
}
