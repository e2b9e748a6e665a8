package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// FormatResults renders the batch result in the requested format.
func (r *Result) FormatResults(format string) (string, error) {
	switch format {
	case "json":
		var buf strings.Builder
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return "", fmt.Errorf("failed to encode batch result: %w", err)
		}
		return buf.String(), nil

	case "csv":
		var buf strings.Builder
		buf.WriteString("file,name,quantity,unit,price,tier\n")
		for _, f := range r.Files {
			if f.Err != nil {
				continue
			}
			for _, p := range f.Receipt.Products {
				fmt.Fprintf(&buf, "%s,%s,%g,%s,%.2f,%s\n",
					f.Path, p.Name, p.Quantity, p.Unit, p.Price, p.Tier)
			}
		}
		return buf.String(), nil

	case "text":
		var buf strings.Builder
		for _, f := range r.Files {
			if f.Err != nil {
				fmt.Fprintf(&buf, "%s: ERROR %v\n", f.Path, f.Err)
				continue
			}
			fmt.Fprintf(&buf, "%s: %d product(s)\n", f.Path, len(f.Receipt.Products))
			for _, p := range f.Receipt.Products {
				fmt.Fprintf(&buf, "  %s  %g %s  %.2f\n", p.Name, p.Quantity, p.Unit, p.Price)
			}
		}
		fmt.Fprintf(&buf, "\n%d file(s), %d failed, %v with %d worker(s)\n",
			len(r.Files), r.Failed, r.Duration.Round(time.Millisecond), r.WorkerCount)
		return buf.String(), nil

	default:
		return "", fmt.Errorf("unsupported batch format: %s", format)
	}
}

// SaveResults writes the formatted results to the configured file or stdout.
func (r *Result) SaveResults(format, outputFile string) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	if outputFile == "" {
		_, err = fmt.Print(output)
		return err
	}
	return os.WriteFile(outputFile, []byte(output), 0o600)
}
