package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/inference"
	"github.com/cube2222/octomap/outputs/formats"
)

var inferCmd = &cobra.Command{
	Use:   "infer FILE",
	Short: "Print the type inferred for every column of a JSON lines file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := readFrame(args[0])
		if err != nil {
			return err
		}

		fields := make([]columnar.Field, len(frame.Columns))
		for i, column := range frame.Columns {
			t, err := inference.InferColumn(column.Values)
			if err != nil {
				return fmt.Errorf("couldn't infer type of column '%s': %w", column.Name, err)
			}
			fields[i] = columnar.Field{Name: column.Name, Type: t}
		}
		formats.DescribeSchema(os.Stdout, fields)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)
}
