package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nilsimda/topturnier/db"
	"github.com/nilsimda/topturnier/ingest"
)

var verifyCmd = &cobra.Command{
	Use:   "verify DIR...",
	Short: "Check that every page of a competition round-trips",
	Long: `Reads each page of the competition directories, generates it again from
what was read and compares both canonical forms. Mismatches are printed as
unified diffs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest DIR...",
	Short: "Verify competitions and save them to the database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the competitions in the database",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var strict bool

func init() {
	ingestCmd.Flags().BoolVar(&strict, "strict", false, "fail a competition on a round-trip mismatch or judge disagreement")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
}

func ingestOptions(cmd *cobra.Command) ingest.Options {
	opts := ingest.Options{
		Workers: cfg.Ingest.Workers,
		Strict:  cfg.Ingest.Strict,
		Logger:  logger,
	}
	if cmd.Flags().Changed("strict") {
		opts.Strict = strict
	}
	return opts
}

func runVerify(cmd *cobra.Command, args []string) error {
	opts := ingestOptions(cmd)
	// report every mismatch instead of stopping at the first
	opts.Strict = false
	out := cmd.OutOrStdout()

	failed := 0
	for _, dir := range args {
		c, err := ingest.Process(cmd.Context(), dir, opts)
		if err != nil {
			return err
		}
		for _, p := range c.Pages {
			status := "ok"
			if !p.Equal {
				status = "MISMATCH"
				failed++
			}
			fmt.Fprintf(out, "%-8s %s (%d skipped)\n", status, p.Path, len(p.Diagnostics))
			if !p.Equal {
				fmt.Fprintln(out, p.Diff)
			}
		}
		if !c.JudgeReport.Consistent() {
			fmt.Fprintf(out, "%-8s %s: judges differ between pages\n", "MISMATCH", dir)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d problem(s)", ingest.ErrRoundTripMismatch, failed)
	}
	return nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	store, err := db.NewStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return ingest.Run(cmd.Context(), args, store, ingestOptions(cmd))
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := db.NewStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	competitions, err := store.GetCompetitions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list competitions: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tJUDGES\tDIR")
	for _, c := range competitions {
		judges, err := store.GetJudges(cmd.Context(), c.ID)
		if err != nil {
			return fmt.Errorf("failed to read judges: %w", err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, c.Title, len(judges), c.Dir)
	}
	return w.Flush()
}
