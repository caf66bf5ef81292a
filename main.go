package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chazu/facet/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "facet",
		Short:         "Build, check and export primitive-shape scenes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(newBuildCmd(opts), newCheckCmd(opts), newExportCmd(opts))
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (o *rootOptions) app() (*App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded config", "path", o.configPath, "primitives", len(cfg.Primitives))
	return NewAppWithConfig(cfg), nil
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "build <scene>",
		Short: "Evaluate a scene script and report its meshes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			result := app.Evaluate(string(source))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				printBuild(cmd.OutOrStdout(), result)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%s: %d error(s)", args[0], len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print mesh data as JSON")
	return cmd
}

func printBuild(w io.Writer, r EvalResult) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
	if len(r.Errors) > 0 {
		return
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.Message)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tKIND\tVERTICES\tTRIANGLES\tCOLOR")
	for i, m := range r.Meshes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n", i, m.Name, m.Kind, len(m.Vertices)/3, len(m.Indices)/3, m.Color)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d shapes, %d shared vertices, %d triangles, volume %.4g\n",
		r.Stats.Shapes, r.Stats.Vertices, r.Stats.Triangles, r.Stats.Volume)
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var tolerance float64
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare generated meshes against reference solids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			results, err := app.Check()
			if err != nil {
				return err
			}
			return printCheck(cmd.OutOrStdout(), results, tolerance)
		},
	}
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-4, "largest allowed vertex distance from the reference surface")
	return cmd
}

func printCheck(w io.Writer, results []CheckResult, tolerance float64) error {
	var failed []string
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tVERTICES\tTRIANGLES\tDEVIATION\tMESH VOLUME\tVOLUME")
	for _, r := range results {
		dev := "n/a"
		if r.Deviation >= 0 {
			dev = fmt.Sprintf("%.2e", r.Deviation)
			if r.Deviation > tolerance {
				failed = append(failed, r.Kind.String())
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.4f\t%.4f\n", r.Kind, r.Vertices, r.Triangles, dev, r.MeshVolume, r.Volume)
	}
	tw.Flush()
	if len(failed) > 0 {
		return fmt.Errorf("deviation above %g for %v", tolerance, failed)
	}
	return nil
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <scene>",
		Short: "Write a scene's triangles to an STL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("export: --out is required")
			}
			app, err := opts.app()
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return app.Export(string(source), out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output STL path")
	return cmd
}
