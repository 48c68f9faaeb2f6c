package quill

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration with TOML-friendly string parsing.
// Supports standard Go duration strings: "250ms", "1s", "5m", etc.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Settings holds the input-handling options consumed by the event core.
type Settings struct {
	// NaturalScrolling inverts raw scroll deltas before dispatch.
	NaturalScrolling bool `toml:"natural_scrolling"`

	// ScrollMultiplierX/Y scale shaped scroll deltas per axis.
	ScrollMultiplierX float64 `toml:"scroll_multiplier_x"`
	ScrollMultiplierY float64 `toml:"scroll_multiplier_y"`

	// ComboMaxInterval is the wall-clock window within which a repeated
	// same-button release extends the click combo.
	ComboMaxInterval Duration `toml:"combo_max_interval"`

	// MaxComboSize caps the combo counter (3 = up to triple-click).
	MaxComboSize int `toml:"max_combo_size"`

	// ClearComboWhenMaxed restarts the combo from 1 after it reaches
	// MaxComboSize, instead of holding at the cap.
	ClearComboWhenMaxed bool `toml:"clear_combo_when_maxed"`

	// CommandActsAsControl folds the Meta/Command modifier into Control
	// (macOS-style bindings on a single chord table).
	CommandActsAsControl bool `toml:"command_acts_as_control"`

	// DragDeadZone is the minimum movement in pixels before a drag starts.
	DragDeadZone float64 `toml:"drag_dead_zone"`
}

// DefaultSettings returns the default input settings.
func DefaultSettings() *Settings {
	return &Settings{
		ScrollMultiplierX: 1,
		ScrollMultiplierY: 1,
		ComboMaxInterval:  Duration{500 * time.Millisecond},
		MaxComboSize:      3,
		DragDeadZone:      4,
	}
}

// LoadSettings reads settings from a TOML file. A missing file yields
// DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadSettingsFrom(f)
}

// LoadSettingsFrom reads settings from an io.Reader. Options absent from the
// document keep their defaults.
func LoadSettingsFrom(r io.Reader) (*Settings, error) {
	s := DefaultSettings()
	if _, err := toml.NewDecoder(r).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}
