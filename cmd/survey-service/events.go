package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/spf13/cobra"
)

var (
	eventsGroup string

	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "Print survey events from Kafka as JSON lines",
		Args:  cobra.NoArgs,
		RunE:  runEvents,
	}
)

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := utils.ToSlogLogger(utils.NewLogger(cfg.IsProduction()))

	subscriber, err := events.NewKafkaSubscriber(events.SubscriberConfig{
		KafkaBrokers:  cfg.Events.GetKafkaBrokers(),
		ConsumerGroup: eventsGroup,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer subscriber.Close()

	encoder := json.NewEncoder(cmd.OutOrStdout())
	return events.Consume(ctx, subscriber, cfg.Events.SurveyTopic, func(_ context.Context, event *events.SurveyEvent) error {
		return encoder.Encode(event)
	}, logger)
}
