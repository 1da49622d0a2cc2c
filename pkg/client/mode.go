package client

import (
	"fmt"
	"strings"
)

// Mode selects where the client reads data from.
type Mode string

const (
	// ModeFrontend never touches the network; responses come from the local
	// provider or the demo registry.
	ModeFrontend Mode = "frontend"
	// ModeBackend always calls the API and surfaces connectivity errors.
	ModeBackend Mode = "backend"
	// ModeAuto calls the API and degrades to ModeFrontend on the first
	// connectivity failure.
	ModeAuto Mode = "auto"
)

// ParseMode validates a mode name. Empty input is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeFrontend, ModeBackend, ModeAuto:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode %q (want frontend, backend or auto)", s)
	}
}

// ResolveMode returns the first non-empty candidate, in priority order, as a
// Mode. With no candidates it resolves to ModeAuto.
func ResolveMode(candidates ...string) (Mode, error) {
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		return ParseMode(c)
	}
	return ModeAuto, nil
}
