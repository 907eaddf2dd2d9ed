package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mhollstein/revset/pkg/namedag"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// VertexListModel - Interactive vertex browsing
// =============================================================================

// VertexSelection holds the result of the vertex selection.
type VertexSelection struct {
	Name vertex.Name
}

type vertexRow struct {
	Name     vertex.Name
	Parents  []vertex.Name
	Children int
}

// VertexListModel is the bubbletea model for browsing a graph's vertices.
// Rows are ordered most recent first, matching query output.
type VertexListModel struct {
	Title    string
	Rows     []vertexRow
	Cursor   int
	Selected *VertexSelection
	Height   int
	Offset   int
}

// NewVertexListModel builds a browse model from a graph.
func NewVertexListModel(title string, d *namedag.NameDag) (VertexListModel, error) {
	names, err := nameset.Names(d.All())
	if err != nil {
		return VertexListModel{}, err
	}

	children := make(map[vertex.Name]int, len(names))
	rows := make([]vertexRow, 0, len(names))
	for _, name := range names {
		parents, err := d.Parents(name)
		if err != nil {
			return VertexListModel{}, err
		}
		for _, p := range parents {
			children[p]++
		}
		rows = append(rows, vertexRow{Name: name, Parents: parents})
	}
	for i := range rows {
		rows[i].Children = children[rows[i].Name]
	}

	return VertexListModel{
		Title:  title,
		Rows:   rows,
		Height: 15,
	}, nil
}

func (m VertexListModel) Init() tea.Cmd {
	return nil
}

func (m VertexListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			row := m.Rows[m.Cursor]
			m.Selected = &VertexSelection{Name: row.Name}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m VertexListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		role := ""
		switch {
		case len(r.Parents) == 0 && r.Children == 0:
			role = "isolated"
		case len(r.Parents) == 0:
			role = "root"
		case r.Children == 0:
			role = "head"
		}

		parentStr := "—"
		if len(r.Parents) > 0 {
			names := make([]string, len(r.Parents))
			for j, p := range r.Parents {
				names[j] = p.String()
			}
			parentStr = strings.Join(names, ", ")
		}

		rows = append(rows, []string{cursor, r.Name.String(), parentStr, fmt.Sprintf("%d", r.Children), role})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Vertex", "Parents", "Children", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 2 || col == 4 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col == 2 || col == 4 {
					return base.Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 1 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
