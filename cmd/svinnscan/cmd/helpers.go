package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/config"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
)

// buildScanner creates the OCR engine and the scanner from configuration.
// The caller owns the returned scanner and must Close it.
func buildScanner(cfg *config.Config) (*scan.Scanner, error) {
	engine, err := ocr.NewTesseract()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OCR engine: %w", err)
	}

	scanner, err := scan.NewBuilder().
		WithEngine(engine).
		WithConfig(cfg.ToScanConfig()).
		Build()
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("failed to build scanner: %w", err)
	}
	return scanner, nil
}

// resolveFormat picks the output format from flag or config and validates it.
func resolveFormat(flagValue string, cfg *config.Config, allowCSV bool) (string, error) {
	format := cfg.Output.Format
	if flagValue != "" {
		format = flagValue
	}
	valid := []string{outputFormatText, outputFormatJSON}
	if allowCSV {
		valid = append(valid, outputFormatCSV)
	}
	for _, f := range valid {
		if format == f {
			return format, nil
		}
	}
	return "", fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(valid, ", "))
}

// writeOutput writes content to the configured output file, or stdout.
func writeOutput(cfg *config.Config, outputFile, content string) error {
	target := cfg.Output.File
	if outputFile != "" {
		target = outputFile
	}
	if target == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(target, []byte(content), 0o600)
}
