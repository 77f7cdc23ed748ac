package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/bulkdata/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a bulk data file for layout problems",
	Long: `Validate checks that a bulk data file can be read back as it was written.
Lines that are too long or, with --strict, continuations whose labels do not
match are errors. Mixed fixed and free lines, detached continuations, fields
too wide for their column and a missing ENDDATA are warnings.

Examples:
  bulkdata validate model.bdf
  bulkdata validate --strict --format free -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := resolveFormat(cmd)
		if err != nil {
			return err
		}
		v := validator.NewValidator(path, f)
		results, err := validateInput(v)
		if err != nil {
			return err
		}

		if n := printResults(cmd.OutOrStdout(), path, results); n > 0 {
			return fmt.Errorf("validation failed with %d errors", n)
		}
		return nil
	},
}

// validateInput checks the validator's file, or standard input for "-"
func validateInput(v *validator.Validator) (validator.ValidationResults, error) {
	if v.DeckPath != "-" {
		return v.Validate()
	}
	text, err := readInput(v.DeckPath)
	if err != nil {
		return v.Results, err
	}
	v.ValidateText(text)
	return v.Results, nil
}

// printResults writes the findings for path and returns the error count
func printResults(w io.Writer, path string, results validator.ValidationResults) int {
	fmt.Fprintf(w, "%s %s\n", color.CyanString("Checking"), path)

	if len(results.Errors) == 0 {
		fmt.Fprintf(w, "%s Deck '%s' is valid.\n", color.GreenString("✅"), path)
	} else {
		fmt.Fprintf(w, "%s Deck '%s' has %d validation errors:\n", color.RedString("❌"), path, len(results.Errors))
		for i, e := range results.Errors {
			fmt.Fprintf(w, "  %d. %s\n", i+1, e)
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Fprintf(w, "%s %d\n", color.YellowString("Warnings:"), len(results.Warnings))
		for i, warn := range results.Warnings {
			fmt.Fprintf(w, "  %d. %s\n", i+1, warn)
		}
	}

	return len(results.Errors)
}
