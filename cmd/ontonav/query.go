package ontonav

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soundprediction/ontonav/pkg/config"
	"github.com/soundprediction/ontonav/pkg/graph"
	"github.com/soundprediction/ontonav/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query <start-id>",
	Short: "Run a traversal from a start entity",
	Long: `Run a breadth-first traversal from a start entity and print the result.

The traversal policy comes either from a named pattern (--pattern, see
"ontonav patterns" for the registry) or from the individual policy flags.

Examples:
  ontonav query question-answering --type AiTask --pattern capabilities_for_task
  ontonav query risk-hallucination --type Risk --max-depth 2 \
    --include-relationships closeMatch,exactMatch --include-types Risk`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var (
	queryType         string
	queryPattern      string
	queryMaxDepth     int
	queryMaxResults   int
	queryIncludeRels  []string
	queryExcludeRels  []string
	queryIncludeTypes []string
	queryExcludeTypes []string
	queryNoDedup      bool
	queryNoCache      bool
	queryOutput       string
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryType, "type", "", "entity type of the start node (e.g. AiTask, Risk)")
	queryCmd.Flags().StringVar(&queryPattern, "pattern", "", "named traversal pattern")
	queryCmd.Flags().IntVar(&queryMaxDepth, "max-depth", graph.DefaultMaxDepth, "traversal depth bound")
	queryCmd.Flags().IntVar(&queryMaxResults, "max-results", 0, "cap on returned nodes (0 = uncapped)")
	queryCmd.Flags().StringSliceVar(&queryIncludeRels, "include-relationships", nil, "relationship kinds to follow")
	queryCmd.Flags().StringSliceVar(&queryExcludeRels, "exclude-relationships", nil, "relationship kinds to never follow")
	queryCmd.Flags().StringSliceVar(&queryIncludeTypes, "include-types", nil, "entity types to accept")
	queryCmd.Flags().StringSliceVar(&queryExcludeTypes, "exclude-types", nil, "entity types to never accept")
	queryCmd.Flags().BoolVar(&queryNoDedup, "no-dedup", false, "permit revisiting nodes")
	queryCmd.Flags().BoolVar(&queryNoCache, "no-cache", false, "bypass the result cache")
	queryCmd.Flags().StringVar(&queryOutput, "output", "json", "output format (json, text)")

	queryCmd.MarkFlagRequired("type")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cfg)

	explorer, cleanup, err := buildExplorer(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	startType, err := types.ParseEntityType(queryType)
	if err != nil {
		return err
	}

	var result *graph.Result
	if queryPattern != "" {
		result, err = explorer.NavigatePattern(args[0], startType, queryPattern)
	} else {
		policy, perr := buildQueryPolicy()
		if perr != nil {
			return perr
		}
		result, err = explorer.Navigate(args[0], startType, policy)
	}
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), result, queryOutput)
}

// buildQueryPolicy assembles a traversal policy from the query flags.
func buildQueryPolicy() (graph.Policy, error) {
	policy := graph.DefaultPolicy()
	policy.MaxDepth = queryMaxDepth
	policy.MaxResults = queryMaxResults
	policy.DisableDedup = queryNoDedup
	policy.DisableCache = queryNoCache

	for _, tag := range queryIncludeRels {
		policy.IncludedRelationships = append(policy.IncludedRelationships, types.RelationType(tag))
	}
	for _, tag := range queryExcludeRels {
		policy.ExcludedRelationships = append(policy.ExcludedRelationships, types.RelationType(tag))
	}
	for _, tag := range queryIncludeTypes {
		t, err := types.ParseEntityType(tag)
		if err != nil {
			return graph.Policy{}, err
		}
		policy.IncludedEntityTypes = append(policy.IncludedEntityTypes, t)
	}
	for _, tag := range queryExcludeTypes {
		t, err := types.ParseEntityType(tag)
		if err != nil {
			return graph.Policy{}, err
		}
		policy.ExcludedEntityTypes = append(policy.ExcludedEntityTypes, t)
	}

	return policy, nil
}

func printResult(w io.Writer, result *graph.Result, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	stats := result.Stats()
	fmt.Fprintf(w, "%d node(s), max depth %d, %d relationship(s) traversed\n",
		stats.NodesReturned, stats.MaxDepthReached, stats.RelationshipsTraversed)
	for _, depth := range result.Depths() {
		fmt.Fprintf(w, "depth %d:\n", depth)
		for _, node := range result.NodesAtDepth(depth) {
			name := node.Entity.Name()
			if name == "" {
				name = node.Ref.ID
			}
			fmt.Fprintf(w, "  %-48s %s", node.Ref.String(), name)
			if len(node.Path) > 0 {
				fmt.Fprintf(w, " (via %s)", node.Path[len(node.Path)-1])
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}
