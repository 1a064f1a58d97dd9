package ontonav

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/soundprediction/ontonav/pkg/config"
	"github.com/soundprediction/ontonav/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print collection counts for the loaded snapshot",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cfg)

	ontology, err := loadOntology(cfg, log)
	if err != nil {
		return err
	}

	counts := ontology.Counts()
	kinds := make([]types.EntityType, 0, len(counts))
	for t := range counts {
		kinds = append(kinds, t)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	w := cmd.OutOrStdout()
	for _, kind := range kinds {
		fmt.Fprintf(w, "%-24s %d\n", kind, counts[kind])
	}
	fmt.Fprintf(w, "%d entities in %d collections\n", ontology.Size(), len(counts))
	return nil
}
