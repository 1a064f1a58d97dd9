package ontonav

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundprediction/ontonav/pkg/config"
	"github.com/soundprediction/ontonav/pkg/mappings"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import SSSOM mapping tables into snapshot fragments",
	Long: `Import SSSOM TSV mapping tables and write the relationships they assert
as YAML snapshot fragments. The loader merges fragments into the entities
they reference on the next load.`,
	RunE: runImport,
}

var (
	importMappingsDir string
	importOutDir      string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importMappingsDir, "mappings", "", "directory of SSSOM TSV mapping tables")
	importCmd.Flags().StringVar(&importOutDir, "out", "", "directory for generated YAML fragments")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cfg)

	mapDir := cfg.Mappings.Dir
	if importMappingsDir != "" {
		mapDir = importMappingsDir
	}
	outDir := cfg.Mappings.OutDir
	if importOutDir != "" {
		outDir = importOutDir
	}
	if mapDir == "" {
		return fmt.Errorf("no mappings directory, set --mappings or mappings.dir")
	}
	if outDir == "" {
		return fmt.Errorf("no output directory, set --out or mappings.out_dir")
	}

	importer := mappings.NewImporter(mappings.WithLogger(log))
	written, err := importer.ImportDir(mapDir, outDir)
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d fragment(s) written\n", len(written))
	return nil
}
