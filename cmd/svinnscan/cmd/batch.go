package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/batch"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Scan many receipt images in parallel",
	Long: `Scan a backlog of receipt photos. Paths may be files or directories;
directories are searched for image files, optionally recursively.

Examples:
  svinnscan batch receipts/
  svinnscan batch receipts/ --recursive --workers 8
  svinnscan batch *.jpg --format csv --output products.csv`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input paths provided")
		}

		cfg := GetConfig()

		batchCfg := batch.DefaultConfig()
		batchCfg.Workers, _ = cmd.Flags().GetInt("workers")
		batchCfg.Recursive, _ = cmd.Flags().GetBool("recursive")
		batchCfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
		batchCfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
		batchCfg.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")

		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := resolveFormat(formatFlag, cfg, true)
		if err != nil {
			return err
		}
		outputFile, _ := cmd.Flags().GetString("output")

		scanner, err := buildScanner(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = scanner.Close() }()

		result, err := batch.ProcessBatch(context.Background(), scanner, args, batchCfg)
		if err != nil {
			return fmt.Errorf("batch scan failed: %w", err)
		}

		return result.SaveResults(format, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntP("workers", "w", 4, "number of parallel scan workers")
	batchCmd.Flags().BoolP("recursive", "r", false, "search directories recursively")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns of files to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to exclude")
	batchCmd.Flags().Bool("continue-on-error", true, "keep going when one image fails")
	batchCmd.Flags().StringP("format", "f", "", "output format: text, json, or csv")
	batchCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}
