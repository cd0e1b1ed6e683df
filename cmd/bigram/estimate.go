package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/bigram/pkg/bigram/prob"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

type subsetValue struct {
	Subset string   `json:"subset"`
	Words  []string `json:"words"`
	P      float64  `json:"p"`
}

type estimateResult struct {
	Words   []string      `json:"words"`
	Values  []float64     `json:"values"`
	Subsets []subsetValue `json:"subsets"`
	// Supporting lists the singleton and pair slots the requested subsets rest on.
	Supporting []string `json:"supporting"`
	NPMI       *float64 `json:"npmi,omitempty"`
}

func newEstimateCmd(g *globalFlags) *cobra.Command {
	var (
		groups  []string
		minFreq int64
		scheme  string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate subset probabilities for word groups",
		Example: `  bigram estimate --db corpus.db --group apple,banana,cherry
  bigram estimate --group "a b" --group c,d --min-freq 2 --scheme one-all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsed, err := parseGroups(groups)
			if err != nil {
				return err
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scheme") {
				cfg.Estimation.Scheme = scheme
			}
			if cmd.Flags().Changed("min-freq") {
				cfg.Estimation.MinFrequency = minFreq
			}

			engine, err := g.openEngine(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			probs, err := engine.Estimate(ctx, parsed, cfg.Estimation.MinFrequency)
			if err != nil {
				return err
			}

			calc := prob.NewCalculator(0)
			out := make([]estimateResult, len(probs))
			for i, p := range probs {
				out[i] = toResult(p)
				if len(p.Words) >= 2 {
					v, err := calc.MeanNPMI(p)
					if err != nil {
						return err
					}
					out[i].NPMI = &v
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&groups, "group", "g", nil, "comma or space separated word group (repeatable)")
	f.Int64Var(&minFreq, "min-freq", 1, "counts below this are treated as zero")
	f.StringVar(&scheme, "scheme", "", "subset scheme: "+strings.Join(subsets.SchemeNames(), ", "))
	return cmd
}

// parseGroups splits each flag value into lowercase words.
func parseGroups(raw []string) ([][]string, error) {
	if len(raw) == 0 {
		return nil, errors.New("at least one --group is required")
	}
	groups := make([][]string, 0, len(raw))
	for _, r := range raw {
		words := strings.FieldsFunc(strings.ToLower(r), func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(words) == 0 {
			return nil, fmt.Errorf("empty group %q", r)
		}
		groups = append(groups, words)
	}
	return groups, nil
}

func toResult(p subsets.Probabilities) estimateResult {
	res := estimateResult{Words: p.Words, Values: p.Values}
	for _, pat := range p.Definition.Requested() {
		members := pat.Members()
		words := make([]string, len(members))
		for i, m := range members {
			words[i] = p.Words[m]
		}
		res.Subsets = append(res.Subsets, subsetValue{
			Subset: pat.String(),
			Words:  words,
			P:      p.At(pat),
		})
	}

	needed := p.Definition.Needed()
	for i, ok := needed.NextSet(0); ok; i, ok = needed.NextSet(i + 1) {
		if pat := subsets.Pattern(i); pat.Size() <= 2 {
			res.Supporting = append(res.Supporting, pat.String())
		}
	}
	return res
}
