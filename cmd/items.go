package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaron-stalmic/countsheet/internal/app"
)

var itemsPrefix string

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the item catalog, optionally filtered by prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := selectedWarehouse()
		if err != nil {
			return err
		}

		session, err := app.Open(cmd.Context(), sessionOptions(w))
		if err != nil {
			return err
		}
		defer session.Close()

		items := session.Matcher.Filter(itemsPrefix)
		for _, item := range items {
			fmt.Println(item)
		}
		if len(items) == 0 {
			fmt.Printf("no items match %q\n", itemsPrefix)
		}
		return nil
	},
}

func init() {
	itemsCmd.Flags().StringVar(&itemsPrefix, "prefix", "", "only items starting with this prefix")
	rootCmd.AddCommand(itemsCmd)
}
