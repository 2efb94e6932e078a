// Package cmd wires the reconciliation engine to a command-line surface.
// The commands are the external caller the engine was designed for: they
// translate flags and arguments into catalog, matcher and transaction
// calls and print the outcome.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaron-stalmic/countsheet/internal/app"
	"github.com/aaron-stalmic/countsheet/internal/config"
)

var (
	cfgFile     string
	warehouse   string
	storeKind   string
	credentials string
	workbook    string
)

var rootCmd = &cobra.Command{
	Use:   "countsheet",
	Short: "Adjust warehouse item quantities on the remote countsheet",
	Long: `countsheet reconciles item quantities recorded in a spreadsheet-backed
ledger. Accepted adjustments are appended to the item's running-expression
cell as a new signed term and recorded in the History sheet; the cell is
never recomputed, so the full chain of adjustments stays readable.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		app.SetupEnvironment()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "warehouses.yaml", "warehouse registry file")
	rootCmd.PersistentFlags().StringVar(&warehouse, "warehouse", "", "warehouse name (defaults to the registry's default)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "sheets", "backend: sheets or xlsx")
	rootCmd.PersistentFlags().StringVar(&credentials, "credentials", "credentials.json", "Google service account key file")
	rootCmd.PersistentFlags().StringVar(&workbook, "workbook", "", "local .xlsx path (store=xlsx)")
}

// selectedWarehouse resolves the --warehouse flag against the registry.
func selectedWarehouse() (config.Warehouse, error) {
	reg, err := config.Load(cfgFile)
	if err != nil {
		return config.Warehouse{}, err
	}
	name := warehouse
	if name == "" {
		name = reg.Default
	}
	w, err := reg.Warehouse(name)
	if err != nil {
		return config.Warehouse{}, fmt.Errorf("%w (configured: %v)", err, reg.Names())
	}
	return w, nil
}

func sessionOptions(w config.Warehouse) app.Options {
	return app.Options{
		Warehouse:       w,
		StoreKind:       storeKind,
		CredentialsFile: credentials,
		WorkbookPath:    workbook,
	}
}
