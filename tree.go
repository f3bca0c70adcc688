package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tunetree/fstree"
	"tunetree/meta"
	"tunetree/rename"
)

// Cached base styles, applied with dynamic width at render time.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Faint(true)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3)
)

// row is one rendered line of the tree: a node plus its indent depth.
type row struct {
	id    fstree.NodeID
	depth int
}

// browser is the Bubble Tea model for the checkable tree view.
type browser struct {
	root   string
	tree   *fstree.Tree
	rows   []row
	cursor int
	offset int

	width  int
	height int

	showHelp bool

	// summary holds the modal text after a rename pass; the affected
	// folders in refreshDirs are reloaded when it is dismissed.
	summary     string
	refreshDirs []string
}

func newBrowser(path string) *browser {
	t := fstree.New()
	t.Expand(t.AddRoot(path))
	b := &browser{
		root:   path,
		tree:   t,
		width:  80,
		height: 24,
	}
	b.rebuildRows()
	return b
}

// rebuildRows flattens the expanded portion of the tree into display rows.
func (b *browser) rebuildRows() {
	b.rows = b.rows[:0]
	roots := b.tree.Roots()
	stack := make([]row, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, row{roots[i], 0})
	}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.rows = append(b.rows, r)
		n := b.tree.At(r.id)
		if n.Kind == fstree.KindDir && n.Expanded {
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, row{n.Children[i], r.depth + 1})
			}
		}
	}
	if b.cursor >= len(b.rows) {
		b.cursor = len(b.rows) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// cursorTo moves the cursor back onto the given node after a rebuild.
func (b *browser) cursorTo(id fstree.NodeID) {
	for i, r := range b.rows {
		if r.id == id {
			b.cursor = i
			return
		}
	}
}

func (b *browser) Init() tea.Cmd {
	return nil
}

func (b *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case tea.KeyMsg:
		if b.summary != "" {
			switch msg.String() {
			case "ctrl+c":
				return b, tea.Quit
			case "enter", "esc", " ":
				b.dismissSummary()
			}
			return b, nil
		}
		if b.showHelp {
			b.showHelp = false
			return b, nil
		}
		if len(b.rows) == 0 {
			if s := msg.String(); s == "q" || s == "ctrl+c" {
				return b, tea.Quit
			}
			return b, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "?":
			b.showHelp = true
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.rows)-1 {
				b.cursor++
			}
		case "right", "l":
			id := b.rows[b.cursor].id
			if n := b.tree.At(id); n.Kind == fstree.KindDir && !n.Expanded {
				b.tree.Expand(id)
				b.rebuildRows()
				b.cursorTo(id)
			}
		case "left", "h":
			id := b.rows[b.cursor].id
			n := b.tree.At(id)
			if n.Kind == fstree.KindDir && n.Expanded {
				b.tree.Collapse(id)
				b.rebuildRows()
				b.cursorTo(id)
			} else if n.Parent != fstree.None {
				b.cursorTo(n.Parent)
			}
		case " ":
			id := b.rows[b.cursor].id
			state := fstree.Checked
			if c := b.tree.At(id).Check; c == fstree.Checked || c == fstree.Partial {
				state = fstree.Unchecked
			}
			b.tree.SetCheck(id, state)
		case "r":
			entries := b.tree.Collect()
			res := rename.Run(b.tree, entries, meta.Reader{})
			b.summary = fmt.Sprintf("Renamed %d file(s).", res.Renamed)
			b.refreshDirs = res.RefreshDirs
		}
	}
	return b, nil
}

// dismissSummary closes the rename summary and reloads every folder that
// had a successful rename so the tree shows the new names.
func (b *browser) dismissSummary() {
	b.summary = ""
	for _, dir := range b.refreshDirs {
		if id := b.tree.FindByPath(dir); id != fstree.None {
			b.tree.Refresh(id)
		}
	}
	b.refreshDirs = nil
	b.rebuildRows()
}

func (b *browser) View() string {
	if b.showHelp {
		return helpText
	}
	if b.summary != "" {
		box := summaryStyle.Render(b.summary + "\n\n(enter to continue)")
		return lipgloss.Place(b.width, b.height, lipgloss.Center, lipgloss.Center, box)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Width(b.width).Render("tunetree — "+b.root) + "\n")

	// keep the cursor inside the visible window
	visible := b.height - 3
	if visible < 1 {
		visible = 1
	}
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}

	end := b.offset + visible
	if end > len(b.rows) {
		end = len(b.rows)
	}
	for i := b.offset; i < end; i++ {
		r := b.rows[i]
		n := b.tree.At(r.id)

		cursor := " "
		if b.cursor == i {
			cursor = ">"
		}

		checked := " "
		switch n.Check {
		case fstree.Checked:
			checked = "x"
		case fstree.Partial:
			checked = "-"
		}

		prefix := "  "
		if n.Kind == fstree.KindDir {
			if n.Expanded {
				prefix = "▾ "
			} else {
				prefix = "▸ "
			}
		}

		line := fmt.Sprintf("%s [%s] %s%s%s", cursor, checked, strings.Repeat("  ", r.depth), prefix, n.Name)
		s.WriteString(runewidth.Truncate(line, b.width, "…") + "\n")
	}

	s.WriteString("\n" + footerStyle.Render("space: check │ r: rename checked │ ?: help │ q: quit"))
	return s.String()
}

const helpText = `
tunetree help

Navigation:
  ↑/k: Up
  ↓/j: Down
  →/l: Expand folder
  ←/h: Collapse folder / Go to parent

Selection:
  <space>: Toggle check on the current item
           (checking a folder checks everything under it)

Actions:
  r: Rename every checked audio file to its title tag

Other:
  q: Quit
  any key: Close help
`
