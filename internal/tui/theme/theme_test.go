package theme

import "testing"

func TestFromName(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TESSERA_NO_COLOR", "0")

	cases := []struct {
		name string
		want Theme
	}{
		{"mocha", Mocha},
		{"dark", Mocha},
		{"latte", Latte},
		{"light", Latte},
		{"plain", Plain},
		{"nocolor", Plain},
	}
	for _, tc := range cases {
		if got := FromName(tc.name); got != tc.want {
			t.Errorf("FromName(%q): wrong theme", tc.name)
		}
	}
}

func TestFromNameAutoDetects(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TESSERA_NO_COLOR", "0")

	orig := detectDarkBackground
	defer func() { detectDarkBackground = orig }()

	detectDarkBackground = func() bool { return true }
	if got := FromName("auto"); got != Mocha {
		t.Error("dark background should select Mocha")
	}

	detectDarkBackground = func() bool { return false }
	if got := FromName(""); got != Latte {
		t.Error("light background should select Latte")
	}
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("TESSERA_NO_COLOR", "")
	if got := FromName("mocha"); got != Plain {
		t.Error("NO_COLOR should force the Plain theme")
	}

	// Tessera-specific override forces colors back on.
	t.Setenv("TESSERA_NO_COLOR", "off")
	if got := FromName("mocha"); got != Mocha {
		t.Error("TESSERA_NO_COLOR=off should override NO_COLOR")
	}
}
