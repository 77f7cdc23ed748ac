package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/bulkdata/internal/deck"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Convert a bulk data deck to YAML or JSON",
	Long: `Export writes the header and cards of a deck as a structured document. Each
card carries its name, the raw text of its fields and their decoded values.
The document can be turned back into bulk data with import.

Examples:
  bulkdata export model.bdf > model.yaml
  bulkdata export --to json -o model.json model.bdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := loadDeck(cmd, args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		to, _ := cmd.Flags().GetString("to")
		switch strings.ToLower(to) {
		case "yaml", "yml":
			err = d.EncodeYAML(&buf)
		case "json":
			err = d.EncodeJSON(&buf)
		default:
			return fmt.Errorf("unknown export format %q (expected yaml or json)", to)
		}
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, output, buf.String())
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Convert a YAML or JSON deck document back to bulk data",
	Long: `Import reads a document written by export and writes it as bulk data in the
configured layout. Only the raw field text is used, so a deck survives an
export and import unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := resolveFormat(cmd)
		if err != nil {
			return err
		}

		text, err := readInput(args[0])
		if err != nil {
			return err
		}

		d, err := deck.DecodeDocument(strings.NewReader(text), f.FieldWidth)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out, err := d.Dumps(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, output, out)
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
	exportCmd.Flags().String("to", "yaml", "Document format: yaml or json")
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	importCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
