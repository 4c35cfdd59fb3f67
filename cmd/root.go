package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cube2222/octomap/codec"
	"github.com/cube2222/octomap/config"
	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/hostjson"
	"github.com/cube2222/octomap/literal"
	"github.com/cube2222/octomap/logs"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "octomap",
	Short: "Move dictionaries in and out of typed MAP columns.",
	Long:  ``,
	Example: `octomap infer data.json
octomap convert --type 'MAP(VARCHAR, INTEGER)' --column data data.json
octomap cast --type 'MAP(VARCHAR, INTEGER)' --column data data.json
octomap literal "MAP {'duckdb': 130}"`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.ReadConfig(configPath)
		} else {
			cfg, err = config.Read()
		}
		if err != nil {
			return fmt.Errorf("couldn't read config: %w", err)
		}
		if outputFormat != "" {
			cfg.Output = outputFormat
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if cfg.Logging.Enabled {
			if err := logs.InitializeFileLogger(cfg.Logging.LogPath()); err != nil {
				return err
			}
		} else {
			logs.Discard()
		}

		if typeCache, err = literal.NewTypeCache(cfg.TypeCacheSize); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if typeCache != nil {
			typeCache.Close()
		}
		logs.CloseLogger()
	},
}

func Execute(ctx context.Context) {
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

var configPath string
var outputFormat string

var cfg *config.Config
var typeCache *literal.TypeCache

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file, ~/.octomap/octomap.yml by default.")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format, one of table, json, csv.")
}

func encoderOptions() ([]codec.Option, error) {
	policy, err := cfg.DuplicateKeysPolicy()
	if err != nil {
		return nil, err
	}
	return []codec.Option{codec.WithDuplicateKeys(policy)}, nil
}

// readFrame reads a JSON lines file, with "-" being standard input.
func readFrame(path string) (*host.Frame, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't open file: %w", err)
		}
		defer f.Close()
		r = f
	}

	frame, err := hostjson.ReadFrame(r)
	if err != nil {
		return nil, fmt.Errorf("couldn't read '%s': %w", path, err)
	}
	log.Printf("read %d rows with %d columns from %s", frame.Len(), len(frame.Columns), path)
	return frame, nil
}
