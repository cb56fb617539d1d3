package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SAP-F-2025/survey-service/internal/analytics"
	"github.com/SAP-F-2025/survey-service/internal/export"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/spf13/cobra"
)

const (
	exportKindAnalytics = "analytics"
	exportKindSummary   = "summary"
	exportKindResponses = "responses"
)

var (
	exportKind    string
	exportFormat  string
	exportStart   string
	exportEnd     string
	exportSection string
	exportOutput  string

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write an analytics, summary or raw responses export to a file",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
)

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.close()

	params := analytics.FilterParams{
		StartDate: exportStart,
		EndDate:   exportEnd,
		Section:   exportSection,
	}
	path, err := writeExport(cmd.Context(), a.services.Export(), exportKind, exportFormat, params, exportOutput)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// writeExport runs the requested export and writes it to output, or to the
// generated file name when output is empty. It returns the written path.
func writeExport(ctx context.Context, svc services.ExportService, kind, format string, params analytics.FilterParams, output string) (string, error) {
	var (
		result *export.Result
		err    error
	)

	switch kind {
	case exportKindAnalytics:
		result, err = svc.ExportAnalytics(ctx, format, params)
	case exportKindSummary:
		result, err = svc.ExportSummary(ctx, params)
	case exportKindResponses:
		result, err = svc.ExportResponses(ctx, format, params)
	default:
		return "", fmt.Errorf("unknown export kind %q (want analytics, summary or responses)", kind)
	}
	if err != nil {
		return "", err
	}

	path := output
	if path == "" {
		path = result.Filename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
