package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/shelflife"
)

// expiryCmd represents the expiry command.
var expiryCmd = &cobra.Command{
	Use:   "expiry <image>",
	Short: "Recover the expiry date from a product label photo",
	Long: `Scan a photographed expiry label and recover printed dates, including
compact forms like 311025, Julian lot codes like L25304, and dates with
OCR-garbled digits like O7/2O27. Recovered dates are filtered to a
plausible window and sorted ascending.

With --estimate NAME, a shelf-life estimate for the named product is
printed when no date can be recovered.

Examples:
  svinnscan expiry lock.jpg
  svinnscan expiry lock.jpg --format json
  svinnscan expiry lock.jpg --estimate "mjölk"`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := resolveFormat(formatFlag, cfg, false)
		if err != nil {
			return err
		}
		outputFile, _ := cmd.Flags().GetString("output")
		estimateName, _ := cmd.Flags().GetString("estimate")

		frame, err := raster.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}

		scanner, err := buildScanner(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = scanner.Close() }()

		result, err := scanner.ScanExpiry(context.Background(), frame, nil)
		if err != nil {
			return fmt.Errorf("expiry scan failed: %w", err)
		}

		// Fall back to the shelf-life table when the label yielded nothing.
		var fallback *shelflife.Estimate
		if !result.Found && estimateName != "" {
			estimator, err := shelflife.New(cfg.ToShelfLifeConfig())
			if err != nil {
				return fmt.Errorf("failed to load shelf-life table: %w", err)
			}
			est := estimator.Estimate(estimateName)
			fallback = &est
		}

		content, err := formatExpiryResult(result, fallback, format)
		if err != nil {
			return err
		}
		return writeOutput(cfg, outputFile, content)
	},
}

func formatExpiryResult(result scan.ExpiryResult, fallback *shelflife.Estimate, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		obj := struct {
			scan.ExpiryResult
			Estimate *shelflife.Estimate `json:"estimate,omitempty"`
		}{ExpiryResult: result, Estimate: fallback}
		var buf strings.Builder
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(obj); err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return buf.String(), nil

	case outputFormatText:
		var buf strings.Builder
		if result.Found {
			fmt.Fprintf(&buf, "Best date: %s\n", result.Best.ISO())
			for _, d := range result.Dates {
				fmt.Fprintf(&buf, "  %s\n", d.ISO())
			}
			return buf.String(), nil
		}
		buf.WriteString("No plausible date found\n")
		if fallback != nil {
			fmt.Fprintf(&buf, "Estimated expiry: %s (%s, %d-%d days, confidence %s)\n",
				fallback.ExpiryDate.Format("2006-01-02"), fallback.Category,
				fallback.MinDays, fallback.MaxDays, fallback.Confidence)
		}
		return buf.String(), nil

	default:
		return "", errors.New("unsupported format: " + format)
	}
}

func init() {
	rootCmd.AddCommand(expiryCmd)
	expiryCmd.Flags().StringP("format", "f", "", "output format: text or json")
	expiryCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	expiryCmd.Flags().String("estimate", "", "product name for shelf-life fallback when no date is found")
}
