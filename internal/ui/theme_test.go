package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemes_DefineStatusColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, key := range []string{"open", "completed", "pending"} {
			if th.StatusColors[key] == "" {
				t.Fatalf("%s theme has no %q status color", name, key)
			}
		}
	}
}

func TestStatusKeyMatchesThemeKeys(t *testing.T) {
	th := GetTheme("Nightfox")
	m := Model{theme: th}
	if got := m.colorForStatus("OPEN"); got != th.StatusColors["open"] {
		t.Fatalf("colorForStatus(OPEN) = %q, want %q", got, th.StatusColors["open"])
	}
	if got := m.colorForStatus("ARCHIVED"); got != th.Text {
		t.Fatalf("colorForStatus(ARCHIVED) = %q, want text color", got)
	}
}
