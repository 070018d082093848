package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestThemeFgDowngrade(t *testing.T) {
	orig := TermProfile
	defer func() { TermProfile = orig }()

	TermProfile = colorprofile.TrueColor
	if _, ok := ThemeFg("#ff79c6").(lipgloss.Color); !ok {
		t.Error("TrueColor profile should keep the hex color")
	}

	TermProfile = colorprofile.ANSI
	if _, ok := ThemeFg("#ff79c6").(lipgloss.ANSIColor); !ok {
		t.Error("ANSI profile should fall back to a safe ANSI color")
	}
}

func TestThemeBgDowngrade(t *testing.T) {
	orig := TermProfile
	defer func() { TermProfile = orig }()

	TermProfile = colorprofile.ANSI256
	if _, ok := ThemeBg("#282a36").(lipgloss.NoColor); !ok {
		t.Error("non-TrueColor profile should drop the background")
	}
}

func TestDefaultThemeStyles(t *testing.T) {
	th := TestTheme()
	if th.Renderer == nil {
		t.Fatal("theme has no renderer")
	}
	if !th.PopupTitle.GetBold() {
		t.Error("popup title should be bold")
	}
	if !th.DimNode.GetFaint() {
		t.Error("dim node style should be faint")
	}
}
