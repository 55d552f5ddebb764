package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZQisAmalou/v2x-log-server/internal/ingest"
	"github.com/ZQisAmalou/v2x-log-server/internal/models"
	"github.com/ZQisAmalou/v2x-log-server/internal/parser"
)

var ingestSourceType string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion pass and print the events as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		service := ingest.New(cfg.Paths.Roots(), parser.NewRegistry(), cfg.Ingest.SyntheticCount)
		events := service.Ingest(cmd.Context(), models.SourceType(ingestSourceType))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(events); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%d events\n", len(events))
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestSourceType, "type", "t", "all", "source type (all|veins|certificate|qca|config)")
	rootCmd.AddCommand(ingestCmd)
}
