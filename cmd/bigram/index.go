package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/bigram/pkg/bigram/ingest"
)

type indexResult struct {
	Ingested  int   `json:"ingested"`
	Documents int64 `json:"documents"`
	Units     int64 `json:"units"`
}

func newIndexCmd(g *globalFlags) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Ingest JSONL documents into the count store",
		Long: `Reads one JSON document per line ({"id","url","title","body","html"}).
Documents already in the store under the same key are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			docs, err := ingest.ReadJSONL(r)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			engine, err := g.openEngine(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			var res indexResult
			for _, d := range docs {
				if err := engine.Ingest(ctx, d); err != nil {
					return err
				}
				res.Ingested++
			}

			if res.Documents, err = engine.Store().DocCount(ctx); err != nil {
				return err
			}
			if res.Units, err = engine.Store().UnitCount(ctx); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSONL input file, stdin when empty or -")
	return cmd
}
