// Package detector picks how build progress is presented.
package detector

import (
	"io"
	"os"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for progress output.
type OutputMode int

const (
	// ModeAuto defers to DetectEnvironment.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive renderer.
	ModeTUI
	// ModeLinear forces line-oriented output.
	ModeLinear
)

// Flag values accepted by ResolveMode.
const (
	FlagAuto   = "auto"
	FlagTUI    = "tui"
	FlagLinear = "linear"
	FlagCI     = "ci"
)

// String returns the flag value for the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return FlagTUI
	case ModeLinear:
		return FlagLinear
	default:
		return FlagAuto
	}
}

// DetectEnvironment recommends a mode for progress written to out.
// Anything that is not a terminal, or any run under CI, gets linear output.
func DetectEnvironment(out io.Writer, getenv func(string) string) OutputMode {
	if getenv == nil {
		getenv = os.Getenv
	}

	ci := getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeLinear
	}

	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --output flag on top of auto-detection.
func ResolveMode(autoDetected OutputMode, userFlag string) (OutputMode, error) {
	switch userFlag {
	case FlagTUI:
		return ModeTUI, nil
	case FlagLinear, FlagCI:
		return ModeLinear, nil
	case FlagAuto, "":
		return autoDetected, nil
	default:
		return autoDetected, zerr.With(domain.ErrInvalidOutputMode, "output", userFlag)
	}
}
