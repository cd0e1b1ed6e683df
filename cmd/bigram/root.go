package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognicore/bigram/pkg/bigram"
	"github.com/cognicore/bigram/pkg/bigram/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dbPath     string
	memory     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "bigram",
		Short: "Index a corpus and estimate word subset probabilities",
		Long: `bigram counts word occurrences and pairwise co-occurrences over
corpus units and turns them into probabilities for word groups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML config file (defaults apply when empty)")
	pf.StringVar(&g.dbPath, "db", "", "SQLite database path, overrides store.path")
	pf.BoolVar(&g.memory, "memory", false, "use an in-memory store")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newIndexCmd(&g),
		newEstimateCmd(&g),
		newNeighborsCmd(&g),
	)
	return root
}

// loadConfig applies command line overrides on top of the config file.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		cfg, err = config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
	}
	if g.dbPath != "" {
		cfg.Store.Driver = config.DriverSQLite
		cfg.Store.Path = g.dbPath
	}
	if g.memory {
		cfg.Store.Driver = config.DriverMemory
	}
	return cfg, nil
}

func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (g *globalFlags) openEngine(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*bigram.Engine, error) {
	return bigram.Open(ctx, cfg, g.logger(cmd.ErrOrStderr()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
