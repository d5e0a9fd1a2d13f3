// Command panelctl runs concept evaluations and summaries offline, without
// the HTTP service.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/hermes"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/processor"
	"github.com/MikeSquared-Agency/synthpanel/internal/store"
	"github.com/MikeSquared-Agency/synthpanel/internal/summary"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "panelctl",
		Short:        "Evaluate marketing concepts against synthetic Honduran personas",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log evaluation progress to stderr")

	logger := func() *slog.Logger {
		if !verbose {
			return slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	root.AddCommand(newEvaluateCmd(logger), newSummarizeCmd(), newArchetypesCmd())
	return root
}

func newEvaluateCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		archetypes []string
		seed       uint64
	)
	cmd := &cobra.Command{
		Use:   "evaluate <concept.json>",
		Short: "Evaluate a concept and print the evaluation session as JSON",
		Long: `Evaluate a concept file against the selected archetypes (all six by
default) and print the completed evaluation session, summary included.

A fixed --seed makes the output reproducible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c concept.Concept
			if err := readJSON(args[0], &c); err != nil {
				return err
			}
			selected, err := processor.ParseArchetypes(splitList(archetypes))
			if err != nil {
				return err
			}

			log := logger()
			eval := evaluator.New(evaluator.Config{Seed: seed}, log)
			proc := processor.New(eval, store.NewDocuments(store.NewMemoryKV()), hermes.Nop{}, log)
			sess, err := proc.Start(cmd.Context(), c, selected)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), sess)
		},
	}
	cmd.Flags().StringSliceVarP(&archetypes, "archetypes", "a", nil, "Comma-separated archetypes (default: all)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <reactions.json>",
		Short: "Summarize a JSON array of segment reactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reactions []evaluator.SegmentReaction
			if err := readJSON(args[0], &reactions); err != nil {
				return err
			}
			s, err := summary.Summarize(reactions)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
}

func newArchetypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archetypes",
		Short: "List the synthetic persona archetypes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ARCHETYPE\tLABEL\tPRICE SENS.\tINNOVATION\tPERSONAS")
			for _, a := range knowledge.Archetypes {
				p, _ := knowledge.Profile(a)
				names := make([]string, 0, 3)
				for _, pc := range knowledge.Personas(a) {
					names = append(names, pc.Name)
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\n", a, p.Label, p.PriceSensitivity, p.InnovationOpenness, strings.Join(names, "; "))
			}
			return w.Flush()
		},
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitList flattens repeated and comma-separated flag values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
