package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cube2222/octomap/codec"
	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/memtable"
	"github.com/cube2222/octomap/outputs/formats"
)

var castCmd = &cobra.Command{
	Use:   "cast FILE",
	Short: "Cast a column of a JSON lines file to a type after scanning it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := typeCache.ParseType(castType)
		if err != nil {
			return fmt.Errorf("couldn't parse type: %w", err)
		}
		frame, err := readFrame(args[0])
		if err != nil {
			return err
		}

		values, err := memtable.CastColumn(frame, castColumn, target)
		if err != nil {
			return err
		}
		column := host.Column{Name: castColumn, Values: make([]host.Value, len(values))}
		for i := range values {
			column.Values[i] = codec.ToHost(values[i])
		}
		out, err := host.NewFrame(column)
		if err != nil {
			return err
		}
		return formats.WriteFrame(os.Stdout, cfg.Output, []columnar.Field{{Name: castColumn, Type: target}}, out)
	},
}

var castType string
var castColumn string

func init() {
	rootCmd.AddCommand(castCmd)
	castCmd.Flags().StringVar(&castType, "type", "", "Target type of the cast.")
	castCmd.Flags().StringVar(&castColumn, "column", "data", "Name of the cast column.")
	castCmd.MarkFlagRequired("type")
}
