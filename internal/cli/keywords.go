package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndrozd/exordium/internal/analyze"
)

var keywordsTop int

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords <manuscript.md>",
	Short: "Extract weighted keywords from a manuscript or semantic core",
	Long: `Keywords mines a markdown or plain-text manuscript for its most
frequent multi-word phrases and standalone terms, the same extraction the
analyzer uses to align the learning corpus with your manuscript topic.

Use it to preview what "topic alignment" will anchor on, or to seed the
scrape command's --keywords flag.

Example:
  exordium keywords manuscript_semantic_core.md
  exordium keywords draft.md --top 25`,
	Args: cobra.ExactArgs(1),
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().IntVar(&keywordsTop, "top", 15, "number of keywords to extract")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read manuscript: %w", err)
	}

	keywords := analyze.ExtractKeywords(string(data), keywordsTop)
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords found in %s", args[0])
	}

	for i, kw := range keywords {
		fmt.Printf("%2d. %s\n", i+1, kw)
	}
	return nil
}
