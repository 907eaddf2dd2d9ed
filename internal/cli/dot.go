package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/spf13/cobra"

	"github.com/mhollstein/revset/pkg/graph"
	"github.com/mhollstein/revset/pkg/namedag"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/query"
)

// dotCommand creates the dot command for rendering graphs with graphviz.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output    string
		format    string
		highlight string
	)

	cmd := &cobra.Command{
		Use:   "dot [graph.json]",
		Short: "Render a commit graph with graphviz",
		Long: `Render a commit graph with graphviz.

Edges point from child to parent. With --highlight, the vertices matching
a set expression are filled in, which makes query results easy to eyeball:

  revset dot repo.json --highlight 'ancestors(release) - ancestors(main)' -o diff.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd.Context(), args[0], output, format, highlight)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, dot")
	cmd.Flags().StringVar(&highlight, "highlight", "", "set expression selecting vertices to highlight")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, input, output, format, highlight string) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return err
	}

	var selected nameset.Set
	if highlight != "" {
		selected, err = query.Eval(d, highlight)
		if err != nil {
			return fmt.Errorf("highlight expression: %w", err)
		}
	}

	renderFormat, err := parseDotFormat(format)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()
	err = renderDot(ctx, d, selected, renderFormat, output)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %d vertices", d.VertexCount())
	printFile(output)
	return nil
}

func parseDotFormat(format string) (graphviz.Format, error) {
	switch format {
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "dot":
		return graphviz.XDOT, nil
	default:
		return "", fmt.Errorf("unsupported format %q (svg, png, dot)", format)
	}
}

// renderDot builds the graphviz graph and writes it out. Highlighted
// vertices get a filled style.
func renderDot(ctx context.Context, d *namedag.NameDag, selected nameset.Set, format graphviz.Format, output string) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("create graph: %w", err)
	}
	defer g.Close()
	g.SetRankDir(cgraph.BTRank) // parents below children, like history views

	// Walk in id order so parents exist before their children's edges.
	nodes := make(map[string]*cgraph.Node)
	it := d.All().IterRev()
	for {
		name, ok, iterErr := it.Next()
		if iterErr != nil {
			return iterErr
		}
		if !ok {
			break
		}
		n, err := g.CreateNodeByName(name.Key())
		if err != nil {
			return fmt.Errorf("add vertex %s: %w", name, err)
		}
		n.SetShape(cgraph.BoxShape)
		if selected != nil {
			member, err := selected.Contains(name)
			if err != nil {
				return err
			}
			if member {
				n.SetStyle(cgraph.FilledNodeStyle)
				n.SetFillColor("lightgoldenrod1")
			}
		}
		nodes[name.Key()] = n

		parents, err := d.Parents(name)
		if err != nil {
			return err
		}
		for _, p := range parents {
			if _, err := g.CreateEdgeByName("", nodes[name.Key()], nodes[p.Key()]); err != nil {
				return fmt.Errorf("add edge %s -> %s: %w", name, p, err)
			}
		}
	}

	if err := gv.RenderFilename(ctx, g, format, output); err != nil {
		return fmt.Errorf("render %s: %w", output, err)
	}
	return nil
}
