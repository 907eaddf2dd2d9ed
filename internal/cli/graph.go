package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhollstein/revset/pkg/graph"
	"github.com/mhollstein/revset/pkg/store"
)

// graphCommand creates the graph management command.
func (c *CLI) graphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Import, export and inspect commit graphs",
	}

	cmd.AddCommand(c.graphStatsCommand())
	cmd.AddCommand(c.graphImportCommand())
	cmd.AddCommand(c.graphExportCommand())
	cmd.AddCommand(c.graphListCommand())
	cmd.AddCommand(c.graphDeleteCommand())

	return cmd
}

// graphStatsCommand creates the "graph stats" subcommand. It works on local
// files and needs no store.
func (c *CLI) graphStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Print statistics for a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}

			heads, err := d.Heads().Count()
			if err != nil {
				return err
			}
			roots, err := d.Roots().Count()
			if err != nil {
				return err
			}

			printInfo("%s", args[0])
			printDetail("vertices  %d", d.VertexCount())
			printDetail("edges     %d", d.EdgeCount())
			printDetail("heads     %d", heads)
			printDetail("roots     %d", roots)
			return nil
		},
	}
}

// graphImportCommand creates the "graph import" subcommand.
func (c *CLI) graphImportCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import [graph.json]",
		Short: "Import a graph file into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			g, err := graph.Unmarshal(raw)
			if err != nil {
				return err
			}
			// Build once to validate before storing.
			d, err := graph.ToDag(g)
			if err != nil {
				return err
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			if err := st.Put(ctx, name, g); err != nil {
				return err
			}

			printSuccess("Imported %s", name)
			printStats(d.VertexCount(), d.EdgeCount(), false)
			printNextStep("Query", fmt.Sprintf("revset query %s 'heads()'", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store the graph under this name (default: file basename)")
	return cmd
}

// graphExportCommand creates the "graph export" subcommand.
func (c *CLI) graphExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export a stored graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			g, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			d, err := graph.ToDag(g)
			if err != nil {
				return err
			}

			if output == "" {
				return graph.Write(d, os.Stdout)
			}
			if err := graph.WriteFile(d, output); err != nil {
				return err
			}
			printSuccess("Exported %s", args[0])
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// graphListCommand creates the "graph list" subcommand.
func (c *CLI) graphListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No graphs stored")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// graphDeleteCommand creates the "graph delete" subcommand.
func (c *CLI) graphDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// openStore connects to the configured graph store. Store-backed commands
// require MongoDB; local commands (query, stats, dot) work on files.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	uri := c.Config.Store.MongoURI
	if uri == "" {
		return nil, fmt.Errorf("no graph store configured: set store.mongo_uri in the config file")
	}
	loggerFromContext(ctx).Debug("connecting to graph store", "uri", uri)
	return store.NewMongoStore(ctx, uri)
}
