package ontonav

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundprediction/ontonav"
	"github.com/soundprediction/ontonav/pkg/config"
)

var traceCmd = &cobra.Command{
	Use:   "trace [task-id]",
	Short: "Trace a task to the intrinsics implementing it",
	Long: `Trace from a task through its required capabilities to the intrinsics and
adapters that implement them. The task is selected by id argument, --tag,
or --name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrace,
}

var (
	traceTag  string
	traceName string
	traceJSON bool
)

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringVar(&traceTag, "tag", "", "task tag")
	traceCmd.Flags().StringVar(&traceName, "name", "", "task display name")
	traceCmd.Flags().BoolVar(&traceJSON, "json", false, "print the trace as JSON")
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cfg)

	sel := ontonav.Selector{Tag: traceTag, Name: traceName}
	if len(args) == 1 {
		sel.ID = args[0]
	}
	if sel.IsZero() {
		return fmt.Errorf("select a task: pass an id argument, --tag, or --name")
	}

	explorer, cleanup, err := buildExplorer(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	trace, err := explorer.TraceTaskToIntrinsics(sel)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if traceJSON {
		data, err := json.MarshalIndent(trace, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "Task: %s (%s)\n", trace.Task.Name(), trace.Task.ID)
	for _, capability := range trace.Capabilities {
		fmt.Fprintf(w, "  Capability: %s (%s)\n", capability.Name(), capability.ID)
		for _, impl := range trace.IntrinsicsByCapability[capability.ID] {
			fmt.Fprintf(w, "    %s: %s (%s)\n", impl.Type, impl.Name(), impl.ID)
		}
	}
	fmt.Fprintf(w, "%d implementation(s) total\n", len(trace.AllIntrinsics))
	return nil
}
