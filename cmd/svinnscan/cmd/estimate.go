package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/shelflife"
)

// estimateCmd represents the estimate command.
var estimateCmd = &cobra.Command{
	Use:   "estimate <product-name>",
	Short: "Estimate shelf life for a product by name",
	Long: `Look up a product name in the shelf-life table and print the expected
number of days until expiry. Matching is by category key, alias, then
keyword cue; unknown products get a conservative default with low
confidence.

Examples:
  svinnscan estimate "mjölk"
  svinnscan estimate "färsk kycklingfilé" --format json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := resolveFormat(formatFlag, cfg, false)
		if err != nil {
			return err
		}

		estimator, err := shelflife.New(cfg.ToShelfLifeConfig())
		if err != nil {
			return fmt.Errorf("failed to load shelf-life table: %w", err)
		}

		est := estimator.Estimate(args[0])

		content, err := formatEstimate(est, format)
		if err != nil {
			return err
		}
		return writeOutput(cfg, "", content)
	},
}

func formatEstimate(est shelflife.Estimate, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		var buf strings.Builder
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(est); err != nil {
			return "", fmt.Errorf("failed to encode estimate: %w", err)
		}
		return buf.String(), nil

	case outputFormatText:
		var buf strings.Builder
		fmt.Fprintf(&buf, "Category: %s\n", est.Category)
		fmt.Fprintf(&buf, "Shelf life: %d-%d days (typical %d)\n", est.MinDays, est.MaxDays, est.TypicalDays)
		fmt.Fprintf(&buf, "Estimated expiry: %s\n", est.ExpiryDate.Format("2006-01-02"))
		fmt.Fprintf(&buf, "Confidence: %s\n", est.Confidence)
		if est.Rationale != "" {
			fmt.Fprintf(&buf, "Rationale: %s\n", est.Rationale)
		}
		return buf.String(), nil

	default:
		return "", errors.New("unsupported format: " + format)
	}
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringP("format", "f", "", "output format: text or json")
}
