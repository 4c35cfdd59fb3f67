package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cube2222/octomap/codec"
	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/literal"
	"github.com/cube2222/octomap/memtable"
	"github.com/cube2222/octomap/octomap"
	"github.com/cube2222/octomap/outputs/formats"
)

var literalCmd = &cobra.Command{
	Use:   "literal VALUE",
	Short: "Parse a literal, optionally insert it into a column of the given type, and print it as a host value.",
	Args:  cobra.ExactArgs(1),
	Example: `octomap literal "MAP {'duckdb': 130}"
octomap literal --type 'MAP(VARCHAR, BIGINT)' "MAP {'duckdb': 130}"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := literal.ParseValue(args[0])
		if err != nil {
			return fmt.Errorf("couldn't parse literal: %w", err)
		}

		if literalType == "" {
			out, err := host.NewFrame(host.Column{Name: "value", Values: []host.Value{codec.ToHost(value)}})
			if err != nil {
				return err
			}
			return formats.WriteFrame(os.Stdout, cfg.Output, []columnar.Field{{Name: "value", Type: value.Type}}, out)
		}

		t, err := typeCache.ParseType(literalType)
		if err != nil {
			return fmt.Errorf("couldn't parse type: %w", err)
		}
		opts, err := encoderOptions()
		if err != nil {
			return err
		}
		table, err := memtable.New("literal", []memtable.Column{{Name: "value", Type: t}}, memtable.WithEncoderOptions(opts...))
		if err != nil {
			return fmt.Errorf("couldn't create table: %w", err)
		}
		defer table.Close()

		if _, err := table.InsertValues([]octomap.Value{value}); err != nil {
			return err
		}
		out, err := table.Fetch()
		if err != nil {
			return fmt.Errorf("couldn't fetch table: %w", err)
		}
		return formats.WriteFrame(os.Stdout, cfg.Output, table.Columns(), out)
	},
}

var literalType string

func init() {
	rootCmd.AddCommand(literalCmd)
	literalCmd.Flags().StringVar(&literalType, "type", "", "Type of the column the literal is inserted into.")
}
