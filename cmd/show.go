package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/bulkdata/internal/card"
	"github.com/arcanaland/bulkdata/internal/deck"
	"github.com/arcanaland/bulkdata/internal/field"
)

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "List the cards of a bulk data deck with typed field values",
	Long: `Show prints the header and every card of a deck as a table. Field values are
colored by type: integers, reals, strings, and a dot for blank fields.

Examples:
  bulkdata show model.bdf
  bulkdata show --name GRID model.bdf
  cat model.bdf | bulkdata show --format free -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := loadDeck(cmd, args[0])
		if err != nil {
			return err
		}

		names, _ := cmd.Flags().GetStringSlice("name")
		var filters []deck.Filter
		if len(names) > 0 {
			filters = append(filters, anyName(names))
		}
		cards := d.Find(deck.All(filters...))

		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80 // Default if we can't get terminal width
		}

		noHeader, _ := cmd.Flags().GetBool("no-header")
		if !noHeader {
			displayHeader(cmd.OutOrStdout(), d)
		}
		for i, c := range cards {
			displayCard(cmd.OutOrStdout(), i, c, width)
		}

		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d of %d cards, %d distinct names\n",
			color.CyanString("Total:"), len(cards), d.Len(), len(d.Names()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().StringSliceP("name", "n", nil, "Only show cards with these names")
	showCmd.Flags().Bool("no-header", false, "Do not print the deck header")
}

// anyName matches cards whose name is one of names
func anyName(names []string) deck.Filter {
	return deck.FilterFunc(func(c *card.Card) bool {
		for _, n := range names {
			if strings.EqualFold(c.Name(), n) {
				return true
			}
		}
		return false
	})
}

// displayHeader prints the deck header, if any
func displayHeader(w io.Writer, d *deck.Deck) {
	lines := d.HeaderLines()
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, color.CyanString("Header:"))
	for _, l := range lines {
		fmt.Fprintf(w, "  %s\n", l)
	}
	fmt.Fprintln(w)
}

// displayCard prints one card as an index, its name and its field cells,
// wrapping the cells to the terminal width
func displayCard(w io.Writer, i int, c *card.Card, width int) {
	const cell = field.DefaultWidth + 2
	index := fmt.Sprintf("%4d  ", i)
	name := fmt.Sprintf("%-8s  ", c.Name())
	prefix := utf8.RuneCountInString(index) + utf8.RuneCountInString(name)
	indent := strings.Repeat(" ", prefix)

	perLine := max((width-prefix)/cell, 1)

	fmt.Fprint(w, color.New(color.Faint).Sprint(index), color.New(color.Bold, color.FgHiWhite).Sprint(name))
	for n, f := range c.Fields() {
		if n > 0 && n%perLine == 0 {
			fmt.Fprint(w, "\n", indent)
		}
		fmt.Fprint(w, colorValue(f.Value(), cell))
	}
	fmt.Fprintln(w)
}

// colorValue renders v padded to width, colored by kind
func colorValue(v field.Value, width int) string {
	text := v.String()
	if v.IsBlank() {
		text = "·"
	}
	pad := strings.Repeat(" ", max(width-utf8.RuneCountInString(text), 1))

	switch v.Kind() {
	case field.Integer:
		return color.CyanString("%s", text) + pad
	case field.Real:
		return color.GreenString("%s", text) + pad
	case field.Blank:
		return color.New(color.Faint).Sprint(text) + pad
	default:
		return color.HiWhiteString("%s", text) + pad
	}
}
