package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagecraft/pagecraft/pkg/layer"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PageTreeModel - Interactive layer tree browser
// =============================================================================

// PageTreeModel is the bubbletea model for browsing a layer tree with
// collapsible branches.
type PageTreeModel struct {
	Title     string
	Tree      []*layer.Layer
	Collapsed map[string]bool
	Items     []layer.FlattenedItem
	Cursor    int
	Height    int
	Offset    int
}

// NewPageTreeModel creates a browser over the given tree, fully expanded.
func NewPageTreeModel(title string, tree []*layer.Layer) PageTreeModel {
	m := PageTreeModel{
		Title:     title,
		Tree:      tree,
		Collapsed: map[string]bool{},
		Height:    20,
	}
	m.Items = layer.Flatten(tree, m.Collapsed)
	return m
}

func (m PageTreeModel) Init() tea.Cmd {
	return nil
}

func (m PageTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ", "tab":
			m = m.toggle()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// toggle collapses or expands the branch under the cursor and reflattens.
func (m PageTreeModel) toggle() PageTreeModel {
	if m.Cursor >= len(m.Items) {
		return m
	}
	item := m.Items[m.Cursor]
	if len(item.Layer.Children) == 0 {
		return m
	}

	m.Collapsed[item.ID] = !m.Collapsed[item.ID]
	m.Items = layer.Flatten(m.Tree, m.Collapsed)
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	return m
}

func (m PageTreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold/unfold  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		glyph := "  "
		if len(item.Layer.Children) > 0 {
			if item.Collapsed {
				glyph = "+ "
			} else {
				glyph = "- "
			}
		}

		line := cursor + strings.Repeat("  ", item.Depth) + glyph + layerLabel(item.Layer)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// layerLabel formats a layer for a single list row.
func layerLabel(l *layer.Layer) string {
	label := string(l.Kind)
	if l.Name != "" {
		label += " " + l.Name
	}
	if l.ComponentID != "" {
		label += " ⬡"
	}
	if l.Locked {
		label += " 🔒"
	}
	return label
}
