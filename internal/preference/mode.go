package preference

import (
	"fmt"
	"strings"

	"atelier/pkg/platform/sentinel"
)

// Mode is the presentation mode.
type Mode int

const (
	Light Mode = iota
	Dark
)

// Encode returns the persisted representation.
func (m Mode) Encode() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

func (m Mode) String() string {
	return m.Encode()
}

// Opposite is the mode a toggle moves to.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode decodes a persisted value.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Light, fmt.Errorf("%w: mode %q", sentinel.ErrInvalidValue, raw)
	}
}

func modeFor(prefersDark bool) Mode {
	if prefersDark {
		return Dark
	}
	return Light
}

// Source records which input last decided the mode. It is never persisted.
type Source int

const (
	Ambient Source = iota
	Persisted
	UserExplicit
)

func (s Source) String() string {
	switch s {
	case Persisted:
		return "persisted"
	case UserExplicit:
		return "user"
	default:
		return "ambient"
	}
}

// State is the controller's decision.
type State struct {
	Mode   Mode
	Source Source
}
