package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/veracity/internal/config"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect or bootstrap environment configuration",
}

var envInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .env.template listing every supported variable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = ".env.template"
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, not overwriting", path)
		}
		if err := os.WriteFile(path, []byte(config.EnvTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Created %s - copy it to .env and fill in your credentials\n", path)
		return nil
	},
}

var envCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which configuration is present and whether it is usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, line := range cfg.Status() {
			fmt.Println(line)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		fmt.Println("Configuration is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.AddCommand(envInitCmd)
	envCmd.AddCommand(envCheckCmd)
}
