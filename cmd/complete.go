package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaron-stalmic/countsheet/internal/app"
)

var completeSteps int

var completeCmd = &cobra.Command{
	Use:   "complete TEXT",
	Short: "Show the completion chosen for a typed prefix",
	Long: `complete runs the prefix matcher the way an input field would: the
typed text selects the hit list, and --step cycles through it the given
number of times, wrapping around. Step 0 prints the first hit.`,
	Args: cobra.ExactArgs(1),
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

		text := args[0]
		choice, ok := session.Matcher.Cycle(text, 0)
		for i := 0; i < completeSteps; i++ {
			choice, ok = session.Matcher.Cycle(text, 1)
		}
		if !ok {
			return fmt.Errorf("no item matches %q", text)
		}

		hits := session.Matcher.Filter(text)
		fmt.Println(choice)
		if len(hits) > 1 {
			fmt.Printf("(%d matches)\n", len(hits))
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().IntVar(&completeSteps, "step", 0, "cycle forward this many times")
	rootCmd.AddCommand(completeCmd)
}
