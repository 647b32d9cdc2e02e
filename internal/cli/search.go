package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/veracity/internal/core"
	"github.com/agenthands/veracity/internal/core/model"
)

var (
	searchTopK    int
	searchResults int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Retrieve ranked evidence for a single query",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "evidence items to return (0 = config default)")
	searchCmd.Flags().IntVarP(&searchResults, "results", "n", 0, "raw search results to request, capped at 10 (0 = config default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit JSON instead of text")
}

func runSearch(cmd *cobra.Command, args []string) error {
	engine, err := core.NewFromConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	evidence := engine.Retrieve(cmd.Context(), args[0], searchTopK, searchResults)
	return printEvidence(os.Stdout, evidence, searchJSON)
}

// printEvidence renders evidence as indented JSON or numbered text. A nil
// slice renders as [], matching the empty lists the batch command emits.
func printEvidence(w io.Writer, evidence []model.Evidence, asJSON bool) error {
	if asJSON {
		if evidence == nil {
			evidence = []model.Evidence{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(evidence)
	}

	if len(evidence) == 0 {
		fmt.Fprintln(w, "No evidence found.")
		return nil
	}
	for i, e := range evidence {
		fmt.Fprintf(w, "%d. %s\n   %s\n   %s\n", i+1, e.Title, e.URL, e.Text)
	}
	return nil
}
