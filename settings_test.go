package quill

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ScrollMultiplierX != 1 || s.ScrollMultiplierY != 1 {
		t.Error("scroll multipliers default to 1")
	}
	if s.ComboMaxInterval.Duration != 500*time.Millisecond {
		t.Errorf("combo interval = %v, want 500ms", s.ComboMaxInterval.Duration)
	}
	if s.MaxComboSize != 3 {
		t.Errorf("max combo size = %d, want 3", s.MaxComboSize)
	}
	if s.DragDeadZone != 4 {
		t.Errorf("drag dead zone = %f, want 4", s.DragDeadZone)
	}
	if s.NaturalScrolling || s.ClearComboWhenMaxed || s.CommandActsAsControl {
		t.Error("boolean options default to false")
	}
}

func TestLoadSettingsFrom(t *testing.T) {
	doc := `
natural_scrolling = true
scroll_multiplier_y = 2.5
combo_max_interval = "250ms"
max_combo_size = 2
clear_combo_when_maxed = true
command_acts_as_control = true
drag_dead_zone = 8.0
`
	s, err := LoadSettingsFrom(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if !s.NaturalScrolling {
		t.Error("natural_scrolling not applied")
	}
	if s.ScrollMultiplierY != 2.5 {
		t.Errorf("scroll_multiplier_y = %f, want 2.5", s.ScrollMultiplierY)
	}
	if s.ScrollMultiplierX != 1 {
		t.Errorf("absent scroll_multiplier_x = %f, want default 1", s.ScrollMultiplierX)
	}
	if s.ComboMaxInterval.Duration != 250*time.Millisecond {
		t.Errorf("combo_max_interval = %v, want 250ms", s.ComboMaxInterval.Duration)
	}
	if s.MaxComboSize != 2 {
		t.Errorf("max_combo_size = %d, want 2", s.MaxComboSize)
	}
	if !s.ClearComboWhenMaxed || !s.CommandActsAsControl {
		t.Error("boolean options not applied")
	}
	if s.DragDeadZone != 8 {
		t.Errorf("drag_dead_zone = %f, want 8", s.DragDeadZone)
	}
}

func TestLoadSettingsFromBadDuration(t *testing.T) {
	if _, err := LoadSettingsFrom(strings.NewReader(`combo_max_interval = "soon"`)); err == nil {
		t.Fatal("unparsable duration should fail")
	}
	if _, err := LoadSettingsFrom(strings.NewReader(`combo_max_interval = "-1s"`)); err == nil {
		t.Fatal("negative duration should fail")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s.MaxComboSize != DefaultSettings().MaxComboSize {
		t.Fatal("missing file should yield defaults")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := Duration{750 * time.Millisecond}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back.Duration != d.Duration {
		t.Fatalf("round trip = %v, want %v", back.Duration, d.Duration)
	}
}
