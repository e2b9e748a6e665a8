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
)

// receiptCmd represents the receipt command.
var receiptCmd = &cobra.Command{
	Use:   "receipt <image>",
	Short: "Extract validated grocery products from a receipt photo",
	Long: `Scan a photographed grocery receipt and extract the food products it
lists, validated against a closed food vocabulary. Noise lines such as
totals, card payments and loyalty points are rejected.

Supported formats: JPEG, PNG, BMP, TIFF

Examples:
  svinnscan receipt kvitto.jpg
  svinnscan receipt kvitto.jpg --format json
  svinnscan receipt kvitto.jpg --format csv --output products.csv`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := resolveFormat(formatFlag, cfg, true)
		if err != nil {
			return err
		}
		outputFile, _ := cmd.Flags().GetString("output")

		frame, err := raster.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}

		scanner, err := buildScanner(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = scanner.Close() }()

		result, err := scanner.ScanReceipt(context.Background(), frame, nil)
		if err != nil {
			return fmt.Errorf("receipt scan failed: %w", err)
		}

		content, err := formatReceiptResult(result, format)
		if err != nil {
			return err
		}
		return writeOutput(cfg, outputFile, content)
	},
}

func formatReceiptResult(result scan.ReceiptResult, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		var buf strings.Builder
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return buf.String(), nil

	case outputFormatCSV:
		var buf strings.Builder
		buf.WriteString("name,quantity,unit,price,tier\n")
		for _, p := range result.Products {
			fmt.Fprintf(&buf, "%s,%g,%s,%.2f,%s\n", p.Name, p.Quantity, p.Unit, p.Price, p.Tier)
		}
		return buf.String(), nil

	case outputFormatText:
		var buf strings.Builder
		if result.Vendor != "" {
			fmt.Fprintf(&buf, "Store: %s\n", result.Vendor)
		}
		fmt.Fprintf(&buf, "Products: %d\n", len(result.Products))
		for _, p := range result.Products {
			if p.HasPrice {
				fmt.Fprintf(&buf, "  %s  %g %s  %.2f kr\n", p.Name, p.Quantity, p.Unit, p.Price)
			} else {
				fmt.Fprintf(&buf, "  %s  %g %s\n", p.Name, p.Quantity, p.Unit)
			}
		}
		return buf.String(), nil

	default:
		return "", errors.New("unsupported format: " + format)
	}
}

func init() {
	rootCmd.AddCommand(receiptCmd)
	receiptCmd.Flags().StringP("format", "f", "", "output format: text, json, or csv")
	receiptCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}
