package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/veracity/internal/quota"
	"github.com/agenthands/veracity/internal/store"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's search quota usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := store.Open(cfg.Storage)
		if err != nil {
			return err
		}
		defer stores.Close()

		date, used, limit := quota.New(cfg.Search.DailyLimit, stores.Quota).Snapshot()
		if limit <= 0 {
			fmt.Printf("%s: %d queries used (no daily limit)\n", date, used)
			return nil
		}
		fmt.Printf("%s: %d/%d queries used\n", date, used, limit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}
