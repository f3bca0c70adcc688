package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// pathPrompt is the initial Bubble Tea model that asks the user for the
// directory to browse. Once the user confirms a valid path, it replaces
// itself with a *browser rooted at that directory.
//
// Separating this into its own model keeps main.go minimal and stands in
// for OS drive enumeration, which is out of scope.

type pathPrompt struct {
	ti     textinput.Model
	errMsg string
}

func newPathPrompt() *pathPrompt {
	ti := textinput.New()
	ti.Placeholder = "." // default to current directory
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 40
	return &pathPrompt{ti: ti}
}

func (p *pathPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p *pathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return p, tea.Quit
		case tea.KeyEnter:
			// Resolve to an absolute path so the tree has a clean root.
			path := p.ti.Value()
			if path == "" {
				path = "."
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				p.errMsg = fmt.Sprintf("invalid path: %v", err)
				return p, nil
			}
			info, err := os.Stat(absPath)
			if err != nil || !info.IsDir() {
				p.errMsg = fmt.Sprintf("%s is not a directory", absPath)
				return p, nil
			}
			return newBrowser(absPath), nil
		}
	}
	var cmd tea.Cmd
	p.ti, cmd = p.ti.Update(msg)
	return p, cmd
}

func (p *pathPrompt) View() string {
	prompt := "Enter directory to browse (Enter to confirm):\n" + p.ti.View()
	if p.errMsg != "" {
		prompt += "\n\n" + p.errMsg
	}
	return prompt
}
