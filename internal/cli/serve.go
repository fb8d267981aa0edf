package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/internal/web"
	"github.com/pagecraft/pagecraft/pkg/session"
	"github.com/pagecraft/pagecraft/pkg/store"
)

// serveCommand creates the serve command for running the editor API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the page editor HTTP API",
		Long: `Run the page editor HTTP API.

Without a config file, serves on :8080 with in-memory documents and
sessions and authentication disabled. Production deployments configure
MongoDB document storage and Redis sessions via --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := web.DefaultConfig()
			if configPath != "" {
				var err error
				cfg, err = web.LoadConfig(configPath)
				if err != nil {
					return err
				}
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg web.Config) error {
	st, err := newDocumentStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize sessions: %w", err)
	}

	publishCache := newPublishCache(cfg.Cache.Dir)
	defer publishCache.Close()

	c.Logger.Info("starting server",
		"listen", cfg.Listen,
		"store", cfg.Store.Backend,
		"sessions", cfg.Session.Backend,
		"auth", !cfg.Auth.Disabled)

	srv := web.New(cfg, st, sessions, publishCache, c.Logger)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

// newDocumentStore builds the document store named by the config.
func newDocumentStore(ctx context.Context, cfg web.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newSessionStore builds the session store named by the config.
func newSessionStore(ctx context.Context, cfg web.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "file":
		return session.NewFileStore(cfg.Session.FileDir)
	case "redis":
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
