package gatekeeper

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// TerminalPrompter provides interactive terminal prompting.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ConfirmOverwrite asks whether an existing output file may be replaced.
func (p *TerminalPrompter) ConfirmOverwrite(path string) (bool, error) {
	const (
		OptionYes = "Yes, overwrite it"
		OptionNo  = "No, keep the existing file"
	)

	var selection string

	err := huh.NewSelect[string]().
		Title("Output Already Exists").
		Description(fmt.Sprintf("%s will be replaced by the new registry.", path)).
		Options(
			huh.NewOption(OptionYes, OptionYes),
			huh.NewOption(OptionNo, OptionNo),
		).
		Value(&selection).
		Run()
	if err != nil {
		return false, err
	}

	return selection == OptionYes, nil
}
