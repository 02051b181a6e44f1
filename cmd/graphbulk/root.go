package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostapenkovs/redisgraph-bulk-loader/bulk"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Connection flags
	flagHost     string
	flagPort     int
	flagPassword string

	// Input flags
	flagNodes          []string
	flagNodesLabeled   []string
	flagRelations      []string
	flagRelationsTyped []string

	flagSeparator     string
	flagEnforceSchema bool
	flagIDType        string
	flagIndices       []string
	flagFullText      []string
	flagMaxTokens     int
)

var rootCmd = &cobra.Command{
	Use:   "graphbulk GRAPH_NAME",
	Short: "Bulk-load CSV files into a graph database",
	Long: `graphbulk ingests node and relationship CSV files and materialises a
property graph on a Redis-protocol graph server in large batches, for the
initial population of empty graphs where per-query creation would be too
slow.

All node files are ingested before any relationship file, regardless of
flag order, because relationships refer to node identifiers that must
already be known.

Examples:
  # Labels and types from file stems
  graphbulk social --nodes Person.csv --nodes Country.csv \
      --relations KNOWS.csv --relations VISITED.csv

  # Explicit labels, enforced schema, an index
  graphbulk social --nodes-with-label Person=people.csv \
      --enforce-schema --index Person:age`,
	Version:       "0.1.0",
	Args:          cobra.ExactArgs(1),
	RunE:          runLoad,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")

	f := rootCmd.Flags()
	f.StringVar(&flagHost, "host", "127.0.0.1", "Server host")
	f.IntVar(&flagPort, "port", 6379, "Server port")
	f.StringVar(&flagPassword, "password", "", "Server password")

	f.StringArrayVar(&flagNodes, "nodes", nil, "Node CSV file; label is the file stem (repeatable)")
	f.StringArrayVar(&flagNodesLabeled, "nodes-with-label", nil, "LABEL=PATH node CSV file (repeatable)")
	f.StringArrayVar(&flagRelations, "relations", nil, "Relationship CSV file; type is the file stem (repeatable)")
	f.StringArrayVar(&flagRelationsTyped, "relations-with-type", nil, "TYPE=PATH relationship CSV file (repeatable)")

	f.StringVar(&flagSeparator, "separator", ",", "Field delimiter (single character, or \\t)")
	f.BoolVar(&flagEnforceSchema, "enforce-schema", false, "Columns declare types as name:TYPE")
	f.StringVar(&flagIDType, "id-type", "string", "Storage type for ID columns: string or integer")
	f.StringArrayVar(&flagIndices, "index", nil, "LABEL:PROPERTY index to create after the load (repeatable)")
	f.StringArrayVar(&flagFullText, "full-text-index", nil, "LABEL:PROPERTY full-text index to create after the load (repeatable)")
	f.IntVar(&flagMaxTokens, "max-token-count", bulk.DefaultMaxTokenCount, "Maximum payload arguments per batch command")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
