package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// pagerModel scrolls a fixed block of text in the terminal.
type pagerModel struct {
	lines  []string
	offset int
	height int
	width  int
}

func newPagerModel(text string) pagerModel {
	return pagerModel{
		lines:  strings.Split(strings.TrimRight(text, "\n"), "\n"),
		height: 24,
	}
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = m.clamp(m.offset)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "down", "enter":
			m.offset = m.clamp(m.offset + 1)
		case "k", "up":
			m.offset = m.clamp(m.offset - 1)
		case "pgdown", " ", "f":
			m.offset = m.clamp(m.offset + m.page())
		case "pgup", "b":
			m.offset = m.clamp(m.offset - m.page())
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = m.clamp(len(m.lines))
		}
	}
	return m, nil
}

func (m pagerModel) View() string {
	end := min(m.offset+m.page(), len(m.lines))
	var b strings.Builder
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for i := end - m.offset; i < m.page(); i++ {
		b.WriteString("~\n")
	}
	b.WriteString(stylePagerStatus.Render(m.status()))
	return b.String()
}

// page is the number of text lines visible above the status line.
func (m pagerModel) page() int {
	return max(m.height-1, 1)
}

// clamp bounds a scroll offset so the last page stays full.
func (m pagerModel) clamp(offset int) int {
	return max(0, min(offset, len(m.lines)-m.page()))
}

func (m pagerModel) status() string {
	last := min(m.offset+m.page(), len(m.lines))
	return fmt.Sprintf(" lines %d-%d of %d  (q to quit) ", m.offset+1, last, len(m.lines))
}

// runPager shows text in a full-screen pager until the user quits.
func runPager(text string) error {
	_, err := tea.NewProgram(newPagerModel(text), tea.WithAltScreen()).Run()
	return err
}
