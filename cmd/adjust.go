package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaron-stalmic/countsheet/internal/app"
	"github.com/aaron-stalmic/countsheet/internal/reconcile"
)

var (
	adjustItem   string
	adjustAmount string
	adjustAction string
	adjustReason string
	adjustGuard  bool
)

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Apply one signed quantity adjustment",
	Long: `adjust submits one transaction: the amount is appended to the item's
running-expression cell as a +N or -N term and the change is recorded in
the history ledger. Validation failures are reported without touching the
sheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := selectedWarehouse()
		if err != nil {
			return err
		}

		opts := sessionOptions(w)
		opts.Reconcile = reconcile.Options{GuardWrites: adjustGuard}

		session, err := app.Open(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer session.Close()

		action := reconcile.ActionUnset
		switch adjustAction {
		case "add":
			action = reconcile.ActionAdd
		case "remove":
			action = reconcile.ActionRemove
		case "":
		default:
			return fmt.Errorf("unknown action %q (want add or remove)", adjustAction)
		}

		outcome := session.Tx.Submit(cmd.Context(), adjustItem, adjustAmount, action, adjustReason)
		switch outcome.Status {
		case reconcile.StatusNoop:
			fmt.Println("nothing to do: no amount given")
			return nil
		case reconcile.StatusRejected:
			return fmt.Errorf("rejected: %s", outcome.Reason)
		case reconcile.StatusFailed:
			return fmt.Errorf("failed: %v", outcome.Err)
		}

		fmt.Printf("updated %q (%+d)\n", outcome.Entry.Item, outcome.Entry.Amount)
		app.NotificationClient().NotifyAdjustment(cmd.Context(), w.Name, outcome.Entry)
		return nil
	},
}

func init() {
	adjustCmd.Flags().StringVar(&adjustItem, "item", "", "exact item name from the catalog")
	adjustCmd.Flags().StringVar(&adjustAmount, "amount", "", "non-negative whole quantity")
	adjustCmd.Flags().StringVar(&adjustAction, "action", "", "add or remove")
	adjustCmd.Flags().StringVar(&adjustReason, "reason", "", "free-text reason for the audit trail")
	adjustCmd.Flags().BoolVar(&adjustGuard, "guard", false, "verify the cell after writing and retry on conflict")
	rootCmd.AddCommand(adjustCmd)
}
