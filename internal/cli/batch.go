package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/agenthands/veracity/internal/core"
)

var (
	batchTopK int
	batchJSON bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [query ...]",
	Short: "Retrieve evidence for many queries concurrently",
	Long: `Batch runs the retrieval pipeline for every query, using the configured
worker pool. Queries come from the arguments, or from stdin one per line
when no arguments are given. Every query gets an answer; a query that
fails or finds nothing maps to an empty list.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVarP(&batchTopK, "top-k", "k", 0, "evidence items per query (0 = config default)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "emit JSON instead of text")
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries := args
	if len(queries) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if q := strings.TrimSpace(scanner.Text()); q != "" {
				queries = append(queries, q)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read queries from stdin: %w", err)
		}
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries given")
	}

	engine, err := core.NewFromConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	// The bar writes to stderr, keeping stdout clean for --json pipelines.
	bar := progressbar.Default(int64(len(queries)), "retrieving")
	engine.BatchProgress = func(query string, found int) {
		bar.Add(1)
	}

	results := engine.BatchRetrieve(cmd.Context(), queries, batchTopK)
	bar.Finish()

	if batchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, q := range queries {
		evidence := results[q]
		fmt.Printf("\n%s (%d)\n", q, len(evidence))
		for i, e := range evidence {
			fmt.Printf("  %d. %s\n     %s\n", i+1, e.Title, e.URL)
		}
	}
	return nil
}
