package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cropwise/estimation-backend/internal/catalog"
	"cropwise/estimation-backend/internal/estimation"
	"cropwise/estimation-backend/internal/planning"
)

type rootOptions struct {
	catalogPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cropctl",
		Short:         "Score crops and estimate yields offline",
		Long:          "cropctl runs crop recommendations and yield estimates against the reference catalog without the API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "reference data YAML (defaults to the built-in catalog)")

	cmd.AddCommand(newCropsCmd(opts), newScoreCmd(opts), newEstimateCmd(opts))
	return cmd
}

func newCropsCmd(opts *rootOptions) *cobra.Command {
	var season, waterNeed, profitability, search string

	cmd := &cobra.Command{
		Use:   "crops",
		Short: "List crops in the reference catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := opts.reference()
			if err != nil {
				return err
			}
			filter, err := catalog.ParseFilter(season, waterNeed, profitability, search)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ref.Catalog.Filter(filter))
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "only crops grown in this season")
	cmd.Flags().StringVar(&waterNeed, "water-need", "", "only crops with this water need")
	cmd.Flags().StringVar(&profitability, "profitability", "", "only crops with this profitability")
	cmd.Flags().StringVar(&search, "search", "", "substring of the crop name, category or a compatible soil")
	return cmd
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank every crop for a farm profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := opts.reference()
			if err != nil {
				return err
			}
			profile, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			results, err := estimation.NewEngine(ref).ScoreCrops(profile)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVarP(&profilePath, "file", "f", "", "farm profile JSON (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newEstimateCmd(opts *rootOptions) *cobra.Command {
	var (
		profilePath string
		crop        string
		seed        uint64
		noJitter    bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate yield, economics and advice for one crop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := opts.reference()
			if err != nil {
				return err
			}
			profile, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var jitter estimation.Jitter
			switch {
			case noJitter:
				jitter = estimation.FixedJitter(1)
			case cmd.Flags().Changed("seed"):
				jitter = estimation.NewRandomJitter(seed)
			default:
				jitter = estimation.NewTimeSeededJitter()
			}

			estimate, err := estimation.NewEngine(ref, estimation.WithJitter(jitter)).EstimateYield(profile, crop)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), estimate)
		},
	}
	cmd.Flags().StringVarP(&profilePath, "file", "f", "", "farm profile JSON (- for stdin)")
	cmd.Flags().StringVar(&crop, "crop", "", "crop name")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible yield jitter")
	cmd.Flags().BoolVar(&noJitter, "no-jitter", false, "disable yield jitter")
	cmd.MarkFlagsMutuallyExclusive("seed", "no-jitter")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("crop")
	return cmd
}

func (o *rootOptions) reference() (*catalog.Reference, error) {
	if o.catalogPath == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(o.catalogPath)
}

func readProfile(path string, stdin io.Reader) (estimation.FarmProfile, error) {
	profile := planning.NewProfile()

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return profile, fmt.Errorf("failed to open profile: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&profile); err != nil {
		return profile, fmt.Errorf("failed to parse profile: %w", err)
	}
	return profile, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
