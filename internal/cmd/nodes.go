package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZQisAmalou/v2x-log-server/internal/ingest"
	"github.com/ZQisAmalou/v2x-log-server/internal/nodes"
	"github.com/ZQisAmalou/v2x-log-server/internal/parser"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Inspect registered node profiles",
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all node profiles as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		return printJSON(aggregator.List(cmd.Context()))
	},
}

var nodesDetailsCmd = &cobra.Command{
	Use:   "details <node-id>",
	Short: "Print the full profile of a single node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		profile, err := aggregator.Details(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(profile)
	},
}

func newAggregator() (*nodes.Aggregator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	service := ingest.New(cfg.Paths.Roots(), parser.NewRegistry(), cfg.Ingest.SyntheticCount)
	return nodes.New(cfg.Paths.Certificate, cfg.Paths.QCA, cfg.Paths.Communications, service, cfg.Ingest.NodeLogLimit), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	nodesCmd.AddCommand(nodesListCmd)
	nodesCmd.AddCommand(nodesDetailsCmd)
	rootCmd.AddCommand(nodesCmd)
}
