package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:   "survey-service",
		Short: "Employee pulse survey collection and analytics service",
		Long: `survey-service collects anonymous employee pulse survey responses and
serves aggregated analytics, insights and exports over HTTP.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(eventsCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to :$PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Run schema migrations before serving")

	eventsCmd.Flags().StringVar(&eventsGroup, "group", "", "Kafka consumer group; empty reads without committing offsets")

	exportCmd.Flags().StringVar(&exportKind, "kind", exportKindAnalytics, "What to export: analytics, summary or responses")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json or xlsx (responses: csv or json)")
	exportCmd.Flags().StringVar(&exportStart, "start", "", "Only include responses on or after this date (YYYY-MM-DD or RFC 3339)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "Only include responses on or before this date (YYYY-MM-DD or RFC 3339)")
	exportCmd.Flags().StringVar(&exportSection, "section", "", "Restrict the export to one section key")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (defaults to the generated file name)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("survey-service: %v", err)
	}
}
