package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/bulkdata/internal/deck"
	"github.com/arcanaland/bulkdata/internal/field"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find [path]",
	Short: "Print the cards of a deck that match a query",
	Long: `Find prints every card matching all of the given conditions, in the configured
layout. Values are typed the way bulk data fields are read, so 1 is an integer,
1. and 1.0 are reals and anything else is text. Integers and reals compare by
value.

Examples:
  bulkdata find --name GRID model.bdf
  bulkdata find --name AERO --field 0=3 model.bdf
  bulkdata find --contains 1 --contains THRU model.bdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, f, err := loadDeck(cmd, args[0])
		if err != nil {
			return err
		}

		filter, err := buildFilter(cmd)
		if err != nil {
			return err
		}

		cards := d.Find(filter)
		if one, _ := cmd.Flags().GetBool("one"); one && len(cards) > 1 {
			cards = cards[:1]
		}
		if len(cards) == 0 {
			return fmt.Errorf("no cards match")
		}

		var b strings.Builder
		for _, c := range cards {
			text, err := c.Dumps(f)
			if err != nil {
				return err
			}
			b.WriteString(text)
		}
		return writeOutput(cmd, "", b.String())
	},
}

func init() {
	RootCmd.AddCommand(findCmd)
	findCmd.Flags().StringP("name", "n", "", "Card name")
	findCmd.Flags().StringArray("field", nil, "Field condition INDEX=VALUE; negative indexes count from the end")
	findCmd.Flags().StringArray("contains", nil, "Value the card must contain; repeat to require several")
	findCmd.Flags().Bool("one", false, "Print only the first match")
}

// buildFilter combines the query flags into one filter
func buildFilter(cmd *cobra.Command) (deck.Filter, error) {
	var filters []deck.Filter

	if name, _ := cmd.Flags().GetString("name"); name != "" {
		filters = append(filters, deck.ByName(strings.TrimSpace(name)))
	}

	conds, _ := cmd.Flags().GetStringArray("field")
	for _, cond := range conds {
		index, value, ok := strings.Cut(cond, "=")
		if !ok {
			return nil, fmt.Errorf("invalid field condition %q: expected INDEX=VALUE", cond)
		}
		i, err := strconv.Atoi(strings.TrimSpace(index))
		if err != nil {
			return nil, fmt.Errorf("invalid field index in %q: %w", cond, err)
		}
		filters = append(filters, deck.ByField{Index: i, Value: field.Read(value)})
	}

	contains, _ := cmd.Flags().GetStringArray("contains")
	if len(contains) > 0 {
		values := make([]any, len(contains))
		for i, c := range contains {
			values[i] = field.Read(c)
		}
		filters = append(filters, deck.ByContains{Values: values})
	}

	return deck.All(filters...), nil
}
