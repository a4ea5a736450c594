package common

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Tor Browser":        "tor-browser",
		"  Signal   (App) ":  "signal-app",
		"ProtonMail":         "protonmail",
		"Dunlop Q5's":        "dunlop-q5s",
		"already-slugified":  "already-slugified",
		"under_scored  name": "under-scored-name",
		"---":                "",
	}
	for input, expected := range cases {
		if actual := Slugify(input); actual != expected {
			t.Errorf("Slugify(%q): expected '%s', got '%s'", input, expected, actual)
		}
	}
}
