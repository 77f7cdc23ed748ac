package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/bulkdata/internal/config"
	"github.com/arcanaland/bulkdata/internal/deck"
	"github.com/arcanaland/bulkdata/internal/format"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bulkdata",
	Short: "Tool for reading, checking and rewriting bulk data decks",
	Long: `Bulkdata reads NASTRAN and ZAERO style bulk data files in fixed, free or
large field layout. It can reformat decks, list and search their cards, lint
them for layout problems and export them as YAML or JSON.

Files are read from the path given, or from standard input when the path is
"-". The layout defaults to the one in the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringP("format", "f", "", "Field layout: fixed, free or large (default from config)")
	RootCmd.PersistentFlags().Bool("strict", false, "Require continuation labels to match the line before")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// resolveFormat builds the layout from the config file and the global flags
func resolveFormat(cmd *cobra.Command) (format.Format, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return format.Format{}, fmt.Errorf("error loading config: %w", err)
	}

	if name, _ := cmd.Flags().GetString("format"); name != "" {
		if err := cfg.Set("format", name); err != nil {
			return format.Format{}, err
		}
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		cfg.StrictContinuation = true
	}

	return cfg.BuildFormat()
}

// readInput returns the contents of path, or of standard input for "-"
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return string(data), nil
}

// loadDeck reads and parses path with the resolved layout. Load warnings go
// to stderr.
func loadDeck(cmd *cobra.Command, path string) (*deck.Deck, format.Format, error) {
	f, err := resolveFormat(cmd)
	if err != nil {
		return nil, format.Format{}, err
	}

	text, err := readInput(path)
	if err != nil {
		return nil, format.Format{}, err
	}

	d, warnings, err := deck.Loads(text, f)
	if err != nil {
		return nil, format.Format{}, fmt.Errorf("%s: %w", path, err)
	}
	printWarnings(cmd.ErrOrStderr(), path, warnings)

	return d, f, nil
}

func printWarnings(w io.Writer, path string, warnings []deck.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s %s: %s\n", color.YellowString("warning:"), path, warn)
	}
}

// writeOutput writes text to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
