package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode int

const (
	// ModePlain is used for pipes, CI logs and scripts.
	ModePlain Mode = iota
	// ModeStyled is used when stdout is a terminal.
	ModeStyled
)

// DetectMode returns ModePlain if:
//   - ARDMETA_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - stdout is not a terminal
//
// and ModeStyled otherwise.
func DetectMode() Mode {
	if os.Getenv("ARDMETA_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}
	return ModeStyled
}

// IsStyled reports whether DetectMode returns ModeStyled.
func IsStyled() bool {
	return DetectMode() == ModeStyled
}
