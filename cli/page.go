package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilsimda/topturnier/dialect"
	"github.com/nilsimda/topturnier/extract"
)

var canonicalizeCmd = &cobra.Command{
	Use:   "canonicalize FILE",
	Short: "Print the canonical form of a result page",
	Long: `Prints the canonical form of a page, the form two pages are compared in.
The page type is taken from the file name unless --dialect is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCanonicalize,
}

var pageDialect string

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print what a result page contains as JSON",
	Long: `Prints the entities read from a page as JSON. Rows the extractor had to
skip are logged as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	for _, cmd := range []*cobra.Command{canonicalizeCmd, extractCmd} {
		cmd.Flags().StringVarP(&pageDialect, "dialect", "d", "", "page type (deck, tabges, erg or ergwert) instead of the file name")
		rootCmd.AddCommand(cmd)
	}
}

// readPage reads the page at path and picks its dialect from --dialect or the
// file name.
func readPage(path string) (dialect.Dialect, string, error) {
	var (
		d   dialect.Dialect
		err error
	)
	if pageDialect != "" {
		d, err = dialect.FromName(pageDialect)
	} else {
		d, err = dialect.FromFilename(path)
	}
	if err != nil {
		return 0, "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read page: %w", err)
	}
	return d, string(raw), nil
}

func runCanonicalize(cmd *cobra.Command, args []string) error {
	d, raw, err := readPage(args[0])
	if err != nil {
		return err
	}
	out, err := dialect.Canonicalize(d, raw)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	d, raw, err := readPage(args[0])
	if err != nil {
		return err
	}
	diags := extract.NewDiagnostics(logger.With(slog.String("file", args[0])))
	page, err := dialect.Extract(d, raw, diags)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
