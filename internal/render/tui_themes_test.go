package render

import "testing"

func TestGetTUIThemeByName(t *testing.T) {
	for _, name := range []string{"tokyonight", "catppuccin", "dracula"} {
		theme, ok := GetTUIThemeByName(name)
		if !ok {
			t.Errorf("expected theme %q to exist", name)
			continue
		}
		if theme.Name != name {
			t.Errorf("theme name mismatch: %s != %s", theme.Name, name)
		}
		if theme.Primary == "" || theme.Text == "" {
			t.Errorf("theme %q has unset colors", name)
		}
	}

	if _, ok := GetTUIThemeByName("nonexistent"); ok {
		t.Error("unknown theme name should not resolve")
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme("tokyonight")

	if !SetTUITheme("dracula") {
		t.Fatal("SetTUITheme(dracula) failed")
	}
	if GetTUITheme().Name != "dracula" {
		t.Errorf("active theme = %s, want dracula", GetTUITheme().Name)
	}

	if SetTUITheme("bogus") {
		t.Error("SetTUITheme should reject unknown names")
	}
	if GetTUITheme().Name != "dracula" {
		t.Error("failed SetTUITheme must not change the active theme")
	}
}
