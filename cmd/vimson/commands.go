package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Neumenon/vimson/config"
	"github.com/Neumenon/vimson/vimson"
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Echo the input, parse it and print its canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if a.cfg.Echo {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
				if len(data) > 0 && data[len(data)-1] != '\n' {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}
			v, err := a.parse(cmd, name, data)
			if err != nil {
				return err
			}
			return a.writeValue(cmd.OutOrStdout(), a.cfg.Output, v)
		},
	}
	cmd.Flags().Bool("echo", true, "print the input before parsing it")
	return cmd
}

func (a *app) newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print the canonical form of the input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parseInput(cmd, args)
			if err != nil {
				return err
			}
			return a.writeValue(cmd.OutOrStdout(), a.cfg.Output, v)
		},
	}
}

func (a *app) newToJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-json [file]",
		Short: "Convert VIMSON to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parseInput(cmd, args)
			if err != nil {
				return err
			}
			return a.writeValue(cmd.OutOrStdout(), config.OutputJSON, v)
		},
	}
}

func (a *app) newToYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-yaml [file]",
		Short: "Convert VIMSON to YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parseInput(cmd, args)
			if err != nil {
				return err
			}
			return a.writeValue(cmd.OutOrStdout(), config.OutputYAML, v)
		},
	}
}

func (a *app) newFromJSONCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "from-json [file]",
		Short: "Convert JSON to VIMSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if path != "" {
				res := gjson.GetBytes(data, path)
				if !res.Exists() {
					return fmt.Errorf("%s: path %q not found", name, path)
				}
				data = []byte(res.Raw)
			}
			v, err := vimson.FromJSON(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.logger.Debug("converted json", zap.String("source", name), zap.String("type", v.Type().String()))
			return a.writeValue(cmd.OutOrStdout(), a.cfg.Output, v)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "convert only the value at this gjson path")
	return cmd
}

func (a *app) newFromYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-yaml [file]",
		Short: "Convert YAML to VIMSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			v, err := vimson.FromYAML(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.logger.Debug("converted yaml", zap.String("source", name), zap.String("type", v.Type().String()))
			return a.writeValue(cmd.OutOrStdout(), a.cfg.Output, v)
		},
	}
}

func (a *app) newHashCmd() *cobra.Command {
	var check string
	cmd := &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the sha256 of the canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parseInput(cmd, args)
			if err != nil {
				return err
			}
			if check == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), vimson.DigestHex(v))
				return err
			}

			want, err := vimson.ParseDigest(check)
			if err != nil {
				return err
			}
			if vimson.Digest(v) != want {
				return fmt.Errorf("digest mismatch: got %s", vimson.DigestHex(v))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return err
		},
	}
	cmd.Flags().StringVar(&check, "check", "", "compare against this hex digest instead of printing it")
	return cmd
}

func (a *app) parseInput(cmd *cobra.Command, args []string) (*vimson.Value, error) {
	name, data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	return a.parse(cmd, name, data)
}

// parse parses data with the configured options. Syntax errors are
// reported to stderr with a diagnostic and returned as errReported.
func (a *app) parse(cmd *cobra.Command, name string, data []byte) (*vimson.Value, error) {
	var tracer vimson.Tracer
	if a.cfg.Debug {
		tracer = zapTracer{logger: a.logger}
	}

	a.logger.Debug("start parse", zap.String("source", name), zap.Int("bytes", len(data)))
	input := string(data)
	v, err := vimson.ParseWithOptions(input, a.cfg.ParseOptions(tracer))
	if err != nil {
		var perr *vimson.ParseError
		if !errors.As(err, &perr) {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		reportParseError(cmd.ErrOrStderr(), name, input, perr, a.cfg.NoColor)
		return nil, errReported
	}
	a.logger.Debug("end parse", zap.String("source", name), zap.String("type", v.Type().String()))
	return v, nil
}

func reportParseError(w io.Writer, name, input string, perr *vimson.ParseError, noColor bool) {
	d := vimson.NewDiagnostic(input, perr)
	c := color.New(color.FgRed, color.Bold)
	if noColor {
		c.DisableColor()
	}
	red := c.SprintFunc()
	fmt.Fprintf(w, "%s:%s: %s: %s\n", name, perr.Pos, red(perr.Kind), perr.Message)
	fmt.Fprintln(w, d.Context)
	fmt.Fprintln(w, red(d.Caret))
}

func (a *app) writeValue(w io.Writer, format config.OutputFormat, v *vimson.Value) error {
	switch format {
	case config.OutputJSON:
		out, err := vimson.ToJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case config.OutputYAML:
		out, err := vimson.ToYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := fmt.Fprintln(w, v.Serialize())
		return err
	}
}
