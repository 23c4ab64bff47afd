// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bocagrande/semmap/internal/config"
	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/gateway"
	"github.com/bocagrande/semmap/internal/graph"
	"github.com/bocagrande/semmap/internal/pipeline"
	"github.com/bocagrande/semmap/internal/tool"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:           "semmap",
		Short:         "Schema-driven mapping of tabular records to a semantic graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "config file path")

	root.AddCommand(newCheckSchemaCmd())
	root.AddCommand(newMapCmd(&configPath))
	root.AddCommand(newServeCmd())
	return root
}

func newCheckSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-schema <contract.yaml>",
		Short: "Validate a data contract without mapping any records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := contract.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema %s: %d fields, %d key fields\n",
				schema.ID(), schema.Len(), len(schema.KeyFields()))
			return nil
		},
	}
}

func newMapCmd(configPath *string) *cobra.Command {
	var (
		schemaPath string
		dataPath   string
		outPath    string
		format     string
		workers    int
		skipHeader bool
		validate   bool
	)

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map delimited records onto a semantic graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return err
			}
			if workers == 0 {
				workers = cfg.Workers
			}

			schema, err := contract.LoadFile(schemaPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(dataPath)
			if err != nil {
				return fmt.Errorf("read data %s: %w", dataPath, err)
			}
			records, err := tool.SplitRecords(schema, string(data), skipHeader)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(schema,
				pipeline.WithWorkers(workers),
				pipeline.WithLogger(slog.Default()))
			result := runner.Run(cmd.Context(), records)

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "turtle":
				if err := graph.WriteTurtle(out, result.Graph); err != nil {
					return err
				}
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(tool.SerializeEntries(result.Graph)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output format %q", format)
			}

			printSummary(cmd, result)

			if validate {
				v := gateway.NewExecValidator(cfg.Validator.Command, slog.Default())
				timeout := time.Duration(cfg.Validator.TimeoutSeconds) * time.Second
				report, err := runner.Validate(cmd.Context(), result, v, timeout)
				switch {
				case errors.Is(err, gateway.ErrValidationTimeout):
					fmt.Fprintln(cmd.ErrOrStderr(), "external validation timed out; graph preserved")
				case err != nil:
					fmt.Fprintf(cmd.ErrOrStderr(), "external validation failed: %v\n", err)
				case !report.Satisfiable:
					fmt.Fprintln(cmd.ErrOrStderr(), "graph is unsatisfiable")
					printViolations(cmd, report)
				case !report.Conforms:
					fmt.Fprintln(cmd.ErrOrStderr(), "graph does not conform to constraints")
					printViolations(cmd, report)
				default:
					fmt.Fprintln(cmd.ErrOrStderr(), "graph is satisfiable and conforms")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "data contract YAML file")
	cmd.Flags().StringVar(&dataPath, "data", "", "delimited record file")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "turtle", "output format: turtle or json")
	cmd.Flags().IntVar(&workers, "workers", 0, "mapping worker count (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&skipHeader, "skip-header", false, "skip the first record row")
	cmd.Flags().BoolVar(&validate, "validate", false, "hand the graph to the configured external validator")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func printSummary(cmd *cobra.Command, result *pipeline.Result) {
	s := result.Summary
	fmt.Fprintf(cmd.ErrOrStderr(),
		"processed %d records: %d mapped, %d skipped, %d individuals, %d conflicts\n",
		s.Processed, s.Mapped, s.Skipped, s.Individuals, s.Conflicts)
	for _, d := range result.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "  skipped row %d (%s): %s\n", d.Row, d.Kind, d.Message)
	}
	for _, c := range result.Graph.Conflicts() {
		fmt.Fprintf(cmd.ErrOrStderr(), "  conflict on %s.%s at row %d: kept %q, dropped %q\n",
			c.Identity, c.Field, c.Row, c.Kept, c.Dropped)
	}
}

func printViolations(cmd *cobra.Command, report gateway.ValidationReport) {
	for _, v := range report.Violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "  violation on %s %s: %s\n", v.Identity, v.Property, v.Message)
	}
}
