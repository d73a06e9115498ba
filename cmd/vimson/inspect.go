package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Neumenon/vimson/vimson"
)

// previewLen caps the scalar text shown in the inspect table.
const previewLen = 40

func (a *app) newInspectCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Tabulate every value with its path and type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parseInput(cmd, args)
			if err != nil {
				return err
			}
			if dump {
				printer := pp.New()
				printer.WithLineInfo = false
				printer.SetColoringEnabled(!a.cfg.NoColor && !color.NoColor)
				_, err := printer.Fprintln(cmd.OutOrStdout(), vimson.ToNative(v))
				return err
			}
			return inspectTable(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "pretty-print the value as a Go tree instead")
	return cmd
}

func inspectTable(w io.Writer, v *vimson.Value) error {
	table := tablewriter.NewWriter(w)
	table.Header("Path", "Type", "Value")

	err := vimson.Walk(v, func(path string, val *vimson.Value) error {
		return table.Append([]string{path, val.Type().String(), preview(val)})
	})
	if err != nil {
		return err
	}
	return table.Render()
}

func preview(v *vimson.Value) string {
	switch v.Type() {
	case vimson.TypeList, vimson.TypeDict:
		n, _ := v.Len()
		return fmt.Sprintf("(%d items)", n)
	}
	return truncate(v.Serialize(), previewLen)
}

// truncate shortens s to at most n bytes, ending in "...", without
// splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
