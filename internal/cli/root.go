package cli

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/veracity/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "veracity",
	Short: "Evidence retrieval for fact verification",
	Long: `Veracity turns a claim query into a ranked, deduplicated set of evidence
snippets from Google Custom Search, re-ranked with Gemini embeddings and
domain trust priors. A daily quota and a same-day result cache keep the
engine inside its API budget.

Examples:
  veracity search "CRISPR gene editing FDA approval"
  veracity batch --json < queries.txt
  veracity quota`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment as-is")
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg.ApplyEnv()
		return nil
	},
}

// Execute runs the root command; it is the program entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "veracity.toml", "path to TOML config file")
}
