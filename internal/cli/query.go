package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhollstein/revset/pkg/cache"
	"github.com/mhollstein/revset/pkg/graph"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/query"
)

const localResultTTL = 24 * time.Hour

// queryResult is what gets printed and cached for one evaluation.
type queryResult struct {
	Expr     string   `json:"expr"` // canonical form
	Count    uint64   `json:"count"`
	Vertices []string `json:"vertices"`
}

// queryCommand creates the query command for evaluating set expressions.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		noCache   bool
		countOnly bool
		asJSON    bool
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "query [graph.json] [expression]",
		Short: "Evaluate a set expression against a commit graph",
		Long: `Evaluate a set expression against a commit graph.

The graph is a JSON file (see 'revset graph export' for the format). The
expression combines vertex names and graph functions with set operators:

  revset query repo.json 'ancestors(release) - ancestors(main)'
  revset query repo.json '(heads() | roots()) & descendants(v1.0)'

Functions: all(), heads(), roots(), ancestors(x), descendants(x),
range(roots, heads). Operators: | (union), & (intersection),
- (difference). Vertices print most recent first.

Results are cached locally keyed on graph content and expression.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd.Context(), args[0], args[1], noCache, countOnly, asJSON, limit)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of matching vertices")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n vertices (0 = all)")

	return cmd
}

// runQuery parses, evaluates (or loads from cache), and prints.
func (c *CLI) runQuery(ctx context.Context, input, src string, noCache, countOnly, asJSON bool, limit int) error {
	expr, err := query.Parse(src)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	results := c.newCache(noCache)
	defer results.Close()
	key := cache.NewDefaultKeyer().QueryKey(cache.Hash(raw), expr.String())

	result, cached := lookupResult(ctx, results, key)
	if !cached {
		result, err = c.evaluateFile(ctx, raw, expr)
		if err != nil {
			return err
		}
		if data, err := json.Marshal(result); err == nil {
			if err := results.Set(ctx, key, data, localResultTTL); err != nil {
				c.Logger.Debug("cache set failed", "err", err)
			}
		}
	}

	return printResult(result, cached, countOnly, asJSON, limit)
}

// evaluateFile builds the graph and runs the expression against it.
func (c *CLI) evaluateFile(ctx context.Context, raw []byte, expr query.Expr) (queryResult, error) {
	spinner := newSpinnerWithContext(ctx, "Evaluating "+expr.String()+"...")
	spinner.Start()

	prog := newProgress(c.Logger)
	g, err := graph.Unmarshal(raw)
	if err != nil {
		spinner.StopWithError("Invalid graph file")
		return queryResult{}, err
	}
	d, err := graph.ToDag(g)
	if err != nil {
		spinner.StopWithError("Graph does not build")
		return queryResult{}, err
	}

	set, err := expr.Eval(d)
	if err != nil {
		spinner.StopWithError("Evaluation failed")
		return queryResult{}, err
	}
	names, err := nameset.Names(set)
	spinner.Stop()
	if err != nil {
		return queryResult{}, err
	}
	if ctx.Err() != nil {
		return queryResult{}, ctx.Err()
	}
	prog.done(fmt.Sprintf("Evaluated %d vertices over a graph of %d", len(names), d.VertexCount()))

	result := queryResult{Expr: expr.String(), Count: uint64(len(names)), Vertices: make([]string, len(names))}
	for i, n := range names {
		result.Vertices[i] = n.Key()
	}
	return result, nil
}

// lookupResult checks the cache; any cache error is a miss.
func lookupResult(ctx context.Context, c cache.Cache, key string) (queryResult, bool) {
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return queryResult{}, false
	}
	var result queryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return queryResult{}, false
	}
	return result, true
}

func printResult(result queryResult, cached, countOnly, asJSON bool, limit int) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if countOnly {
		fmt.Println(result.Count)
		return nil
	}

	shown := result.Vertices
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, v := range shown {
		fmt.Println(v)
	}
	if len(shown) < len(result.Vertices) {
		printDetail("... %d more", len(result.Vertices)-len(shown))
	}
	printStats(int(result.Count), 0, cached)
	return nil
}
