package ontonav

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundprediction/ontonav/pkg/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the registered traversal patterns",
	RunE:  runPatterns,
}

var patternsJSON bool

func init() {
	rootCmd.AddCommand(patternsCmd)

	patternsCmd.Flags().BoolVar(&patternsJSON, "json", false, "print the full patterns with their policies as JSON")
}

func runPatterns(cmd *cobra.Command, args []string) error {
	if patternsJSON {
		data, err := json.MarshalIndent(patterns.List(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, p := range patterns.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", p.Name, p.Description)
	}
	return nil
}
