package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, "survey-responses")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "survey-responses", testLogger())

	event := NewResponseSubmittedEvent(ResponseSubmittedEvent{
		ResponseID: 7,
		SurveyID:   1,
		SessionID:  "abc",
		Consented:  true,
		IsComplete: true,
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, publisher.PublishSurveyEvent(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventResponseSubmitted), msg.Metadata.Get("event_type"))
		assert.Equal(t, "survey-service", msg.Metadata.Get("source"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		data := decoded["data"].(map[string]interface{})
		assert.Equal(t, "abc", data["session_id"])
		assert.Equal(t, float64(7), data["response_id"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for published message")
	}
}

func TestNewResponseSubmittedEvent(t *testing.T) {
	submitted := NewResponseSubmittedEvent(ResponseSubmittedEvent{Consented: true})
	assert.Equal(t, EventResponseSubmitted, submitted.Type)
	assert.NotEmpty(t, submitted.ID)
	assert.Equal(t, "1.0", submitted.Version)
	assert.False(t, submitted.Timestamp.IsZero())

	declined := NewResponseSubmittedEvent(ResponseSubmittedEvent{Consented: false})
	assert.Equal(t, EventResponseDeclined, declined.Type)
	assert.NotEqual(t, submitted.ID, declined.ID)
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(testLogger())

	require.NoError(t, publisher.PublishSurveyEvent(context.Background(), NewResponseSubmittedEvent(ResponseSubmittedEvent{Consented: true})))
	assert.Len(t, publisher.GetPublishedEvents(), 1)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}

func TestConsume(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	received := make(chan *SurveyEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- Consume(ctx, pubSub, "survey-responses", func(_ context.Context, event *SurveyEvent) error {
			select {
			case received <- event:
			default:
			}
			cancel()
			return nil
		}, testLogger())
	}()

	publisher := NewWatermillEventPublisher(pubSub, "survey-responses", testLogger())
	event := NewResponseSubmittedEvent(ResponseSubmittedEvent{SessionID: "abc", Consented: false})

	// gochannel drops messages published before a subscriber exists
	require.Eventually(t, func() bool {
		if err := publisher.PublishSurveyEvent(context.Background(), event); err != nil {
			return false
		}
		select {
		case got := <-received:
			assert.Equal(t, event.ID, got.ID)
			assert.Equal(t, EventResponseDeclined, got.Type)
			return true
		default:
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)

	assert.NoError(t, <-done)
}
