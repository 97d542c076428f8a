package ui

import (
	"testing"

	"github.com/hielopolar/polar/internal/asset"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 || names[0] != "Glaciar" || names[1] != "Dracula" {
		t.Fatalf("ThemeNames = %v", names)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("dracula").Name; got != "Dracula" {
		t.Fatalf("GetTheme(dracula) = %q", got)
	}
	if got := GetTheme("missing").Name; got != "Glaciar" {
		t.Fatalf("GetTheme(missing) = %q, want Glaciar", got)
	}
}

func TestNextThemeWraps(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Glaciar" {
		t.Fatalf("NextTheme(Dracula) = %q", got)
	}
	if got := NextTheme("unknown"); got != "Glaciar" {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
}

func TestThemesColorEveryStatus(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, st := range asset.Statuses() {
			if th.StatusColors[st] == "" {
				t.Errorf("theme %s has no color for %s", name, st)
			}
		}
	}
}
