package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mhollstein/revset/pkg/graph"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <graph.json>",
		Short: "Interactively browse the vertices of a graph",
		Long: `Browse opens an interactive list of every vertex in a graph file,
ordered most recent first. Selecting a vertex prints its parents and
the size of its history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(args[0])
		},
	}
	return cmd
}

func (c *CLI) runBrowse(path string) error {
	d, err := graph.ReadFile(path)
	if err != nil {
		printError("Failed to read graph: %v", err)
		return err
	}

	if d.VertexCount() == 0 {
		printWarning("Graph %s has no vertices", path)
		return nil
	}

	m, err := NewVertexListModel(path, d)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(VertexListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	name := fm.Selected.Name

	anc, err := d.Ancestors(name)
	if err != nil {
		return err
	}
	ancCount, err := anc.Count()
	if err != nil {
		return err
	}
	desc, err := d.Descendants(name)
	if err != nil {
		return err
	}
	descCount, err := desc.Count()
	if err != nil {
		return err
	}

	parents, err := d.Parents(name)
	if err != nil {
		return err
	}

	printInfo("Vertex %s", StyleHighlight.Render(name.String()))
	if len(parents) == 0 {
		printDetail("parents: none (root)")
	} else {
		line := "parents:"
		for _, p := range parents {
			line += " " + p.String()
		}
		printDetail("%s", line)
	}
	printDetail("%d ancestors, %d descendants (both include the vertex itself)", ancCount, descCount)
	fmt.Println()
	printNextStep("Query its history", fmt.Sprintf("revset query %s 'ancestors(%s)'", path, name))

	return nil
}
