// Package main provides the CLI entry point for xlbind.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/javajack/xlbind"
	"github.com/spf13/cobra"
)

// cli holds the state shared by the commands of one root command.
type cli struct {
	verbose bool
	logger  *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))}

	rootCmd := &cobra.Command{
		Use:   "xlbind",
		Short: "Map spreadsheet rows to records and records to spreadsheets",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newValidateCmd(c),
		newDescribeCmd(),
		newImportCmd(c),
		newExportCmd(c),
	)
	return rootCmd
}

func newValidateCmd(c *cli) *cobra.Command {
	var expect []string
	var sheet string

	cmd := &cobra.Command{
		Use:   "validate [input.xlsx]",
		Short: "Check that every header cell matches an expected label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := xlbind.ValidateHeaderFile(args[0], expect, xlbind.WithSheet(sheet), xlbind.WithLogger(c.logger))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: %w", args[0], xlbind.ErrHeaderMismatch)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "header OK")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&expect, "expect", nil, "Expected header labels (comma-separated)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	_ = cmd.MarkFlagRequired("expect")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "describe [input.xlsx]",
		Short: "Show how header cells map to field names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := xlbind.DescribeFile(args[0], xlbind.WithSheet(sheet))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	var (
		sheet      string
		filter     string
		expect     []string
		outputPath string
		pretty     bool
		skipErrors bool
	)

	cmd := &cobra.Command{
		Use:   "import [input.xlsx]",
		Short: "Convert sheet rows to JSON records keyed by field name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []xlbind.Option{
				xlbind.WithSheet(sheet),
				xlbind.WithRowFilter(filter),
				xlbind.WithLogger(c.logger),
			}
			if len(expect) > 0 {
				opts = append(opts, xlbind.WithExpectedHeaders(expect...))
			}
			if skipErrors {
				opts = append(opts, xlbind.WithErrorPolicy(xlbind.SkipInvalidRows))
			}

			records, err := xlbind.ImportFile[xlbind.Record](args[0], opts...)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), outputPath, records, pretty)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().StringVar(&filter, "filter", "", `Row filter expression, e.g. 'sku != ""'`)
	cmd.Flags().StringSliceVar(&expect, "expect", nil, "Expected header labels (comma-separated)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "Skip rows that fail to map")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		specPath   string
		dataPath   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render JSON records into a styled workbook",
		Long: `Render JSON records into a styled workbook.

The data file holds records by dataset name:
  {"customers": [{"firstName": "Ada", "lastName": "Lovelace"}]}
The spec file lists datasets, header keys and labels (YAML).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := xlbind.LoadReportSpecFile(specPath)
			if err != nil {
				return err
			}
			records, err := readRecords(dataPath)
			if err != nil {
				return err
			}
			if err := xlbind.ExportFile(outputPath, spec.Bind(records), spec.Labels, xlbind.WithLogger(c.logger)); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			c.logger.Info("workbook written", "path", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "Report spec (YAML)")
	cmd.Flags().StringVar(&dataPath, "data", "", "Records by dataset name (JSON)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "report.xlsx", "Output workbook path")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func readRecords(path string) (map[string][]xlbind.Exportable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data: %w", err)
	}
	defer f.Close()

	var raw map[string][]xlbind.Record
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	out := make(map[string][]xlbind.Exportable, len(raw))
	for name, recs := range raw {
		out[name] = xlbind.Exportables(recs)
	}
	return out, nil
}

func writeJSON(stdout io.Writer, path string, v any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
