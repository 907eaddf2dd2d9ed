package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mhollstein/revset/internal/server"
	"github.com/mhollstein/revset/pkg/cache"
	"github.com/mhollstein/revset/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		memory bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP query API",
		Long: `Run the HTTP query API.

Graphs live in the configured MongoDB store (store.mongo_uri); with
--memory an ephemeral in-process store is used instead. Query results are
cached in Redis when cache.backend is "redis", otherwise on local disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, memory)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8400\")")
	cmd.Flags().BoolVar(&memory, "memory", false, "use an ephemeral in-memory graph store")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, memory bool) error {
	st, err := c.serveStore(ctx, memory)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	results, err := c.serveCache(ctx)
	if err != nil {
		return err
	}
	defer results.Close()

	srv := server.New(st, results, cache.NewDefaultKeyer(), c.Logger)
	return srv.ListenAndServe(ctx, addr)
}

func (c *CLI) serveStore(ctx context.Context, memory bool) (store.Store, error) {
	if memory || c.Config.Store.MongoURI == "" {
		if !memory {
			c.Logger.Warn("no store.mongo_uri configured, graphs will not survive a restart")
		}
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, c.Config.Store.MongoURI)
}

func (c *CLI) serveCache(ctx context.Context) (cache.Cache, error) {
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	}
	return c.newCache(false), nil
}
