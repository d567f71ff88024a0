package profile

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// PtermPrompter asks on the terminal with an interactive select.
type PtermPrompter struct {
	In *os.File
}

func NewPtermPrompter() *PtermPrompter {
	return &PtermPrompter{In: os.Stdin}
}

func (p *PtermPrompter) Select(names []string) (string, error) {
	if !isatty.IsTerminal(p.In.Fd()) && !isatty.IsCygwinTerminal(p.In.Fd()) {
		return "", fmt.Errorf("%w: stdin is not a terminal, pass --profile", ErrNoSelection)
	}

	selection, err := pterm.DefaultInteractiveSelect.
		WithOptions(names).
		Show("Select a profile")
	if err != nil {
		return "", err
	}
	if selection == "" {
		return "", ErrNoSelection
	}
	return selection, nil
}
