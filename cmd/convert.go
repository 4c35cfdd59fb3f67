package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cube2222/octomap/inference"
	"github.com/cube2222/octomap/logs"
	"github.com/cube2222/octomap/memtable"
	"github.com/cube2222/octomap/outputs/formats"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Insert a JSON lines file into a table with a declared column type and read it back.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		declared, err := typeCache.ParseType(convertType)
		if err != nil {
			return fmt.Errorf("couldn't parse type: %w", err)
		}
		frame, err := readFrame(args[0])
		if err != nil {
			return err
		}
		if _, ok := frame.Column(convertColumn); !ok {
			return fmt.Errorf("input has no column '%s'", convertColumn)
		}

		columns := make([]memtable.Column, len(frame.Columns))
		for i, column := range frame.Columns {
			if column.Name == convertColumn {
				columns[i] = memtable.Column{Name: column.Name, Type: declared}
				continue
			}
			t, err := inference.InferColumn(column.Values)
			if err != nil {
				return fmt.Errorf("couldn't infer type of column '%s': %w", column.Name, err)
			}
			columns[i] = memtable.Column{Name: column.Name, Type: inference.Resolve(t)}
		}

		opts, err := encoderOptions()
		if err != nil {
			return err
		}
		table, err := memtable.New(
			"input",
			columns,
			memtable.WithEncoderOptions(opts...),
			memtable.WithLogger(logs.NewStatementLogger("input")),
		)
		if err != nil {
			return fmt.Errorf("couldn't create table: %w", err)
		}
		defer table.Close()

		if _, err := table.InsertFrame(frame); err != nil {
			return err
		}
		out, err := table.Fetch()
		if err != nil {
			return fmt.Errorf("couldn't fetch table: %w", err)
		}
		return formats.WriteFrame(os.Stdout, cfg.Output, table.Columns(), out)
	},
}

var convertType string
var convertColumn string

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertType, "type", "", "Declared type of the converted column, for example 'MAP(VARCHAR, INTEGER)'.")
	convertCmd.Flags().StringVar(&convertColumn, "column", "data", "Name of the converted column.")
	convertCmd.MarkFlagRequired("type")
}
