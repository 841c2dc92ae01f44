package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gamezone/internal/client/config"
	"github.com/dmitrijs2005/gamezone/internal/client/services"
	"github.com/dmitrijs2005/gamezone/internal/logging"
	"github.com/spf13/cobra"
)

// newLogger builds the process logger; tests replace it.
var newLogger = func(cfg *config.Config) (logging.Logger, func() error, error) {
	switch cfg.LogFormat {
	case "text":
		l, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel, cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		return l, func() error { return nil }, nil
	case "", "json":
		zl, err := logging.NewProductionZap(cfg.LogLevel, cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		l := logging.NewZapLogger(zl)
		return l, l.Sync, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
}

type runner func(ctx context.Context, a *App, args []string) error

// NewRootCmd builds the gamezone command tree. Flags owned by the config
// package (-a, -d, -t, -l, -c) are tolerated and ignored here.
func NewRootCmd(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	var debug bool

	withApp := func(run runner) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if debug {
				cfg.Debug = true
			}
			log, syncLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = syncLog() }()

			a, err := NewApp(cmd.Context(), cfg, log, in, out)
			if err != nil {
				return err
			}
			defer a.Close()
			return run(cmd.Context(), a, args)
		}
	}

	root := &cobra.Command{
		Use:                "gamezone",
		Short:              "GameZone catalogue and account client",
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE:               withApp(shell),
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "development logging")
	root.SetIn(in)
	root.SetOut(out)

	var category, search string
	var offline bool
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List products (synced with the API)",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			q := services.AllProducts()
			switch {
			case category != "":
				q = services.ByCategory(category)
			case search != "":
				q = services.ByName(search)
			}
			if offline {
				return a.offlineProducts(ctx, q)
			}
			switch q.Kind {
			case services.QueryCategory:
				return a.showListing(ctx, func() { a.catalog.FilterByCategory(category) }, true)
			case services.QueryName:
				return a.showListing(ctx, func() { a.catalog.Search(search) }, true)
			default:
				return a.showListing(ctx, a.catalog.LoadAll, true)
			}
		}),
	}
	productsCmd.Flags().StringVar(&category, "category", "", "only this category")
	productsCmd.Flags().StringVar(&search, "search", "", "name contains")
	productsCmd.Flags().BoolVar(&offline, "offline", false, "read the local cache only")

	productCmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *App, args []string) error {
			return a.Show(ctx, args[0])
		}),
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session (default)",
		Args:  cobra.NoArgs,
		RunE:  withApp(shell),
	}

	for _, c := range []*cobra.Command{productsCmd, productCmd, shellCmd} {
		c.FParseErrWhitelist = root.FParseErrWhitelist
		root.AddCommand(c)
	}
	return root
}

// shell runs the interactive session until EOF or exit.
func shell(ctx context.Context, a *App, _ []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("GameZone (escriba 'help' para ver los comandos)")
	a.warmup(ctx)
	a.followCatalog(ctx)

	runREPL(ctx, a, a.status, lineReader(a.reader))
	return nil
}
