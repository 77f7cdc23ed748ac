package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/bulkdata/internal/format"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt [path]",
	Short: "Rewrite a bulk data deck in a uniform layout",
	Long: `Fmt reads a deck and writes it back with every card laid out the same way.
Comments are dropped, continuation labels are renumbered and trailing blank
fields are removed.

Examples:
  bulkdata fmt model.bdf
  bulkdata fmt --to free model.bdf
  bulkdata fmt -w --align right model.bdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		d, f, err := loadDeck(cmd, path)
		if err != nil {
			return err
		}

		out := f
		if to, _ := cmd.Flags().GetString("to"); to != "" {
			preset, err := format.Preset(to)
			if err != nil {
				return err
			}
			preset.Align = f.Align
			preset.Newline = f.Newline
			out = preset
		}
		if align, _ := cmd.Flags().GetString("align"); align != "" {
			if out.Align, err = format.ParseAlignment(align); err != nil {
				return err
			}
		}

		text, err := d.Dumps(out)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if enddata, _ := cmd.Flags().GetBool("enddata"); enddata && d.Header == "" {
			text += format.EndData + out.Newline
		}

		target, _ := cmd.Flags().GetString("output")
		if write, _ := cmd.Flags().GetBool("write"); write {
			if path == "-" {
				return fmt.Errorf("cannot rewrite standard input in place")
			}
			target = path
		}
		return writeOutput(cmd, target, text)
	},
}

func init() {
	RootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().String("to", "", "Output layout: fixed, free or large (default: the input layout)")
	fmtCmd.Flags().String("align", "", "Cell alignment for fixed layouts: left or right")
	fmtCmd.Flags().Bool("enddata", false, "End the output with an ENDDATA line even without a header")
	fmtCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	fmtCmd.Flags().BoolP("write", "w", false, "Rewrite the input file in place")
}
