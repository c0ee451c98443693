package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/worktrack/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, "error")
}

var fastRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}

func countingHandler(calls *int, failUntil int) func(context.Context, *message.Message) error {
	return func(_ context.Context, _ *message.Message) error {
		*calls++
		if *calls < failUntil {
			return errors.New("transient error")
		}
		return nil
	}
}

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		policy    RetryPolicy
		failUntil int
		wantCalls int
		wantErr   bool
	}{
		{"success on first attempt", fastRetry, 1, 1, false},
		{"success after retries", fastRetry, 3, 3, false},
		{"exhausts attempts", fastRetry, 100, 3, true},
		{"zero attempts still runs once", RetryPolicy{}, 100, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			msg := message.NewMessage("id", nil)
			err := retryWithBackoff(context.Background(), msg, countingHandler(&calls, tt.failUntil), tt.policy, nopLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
		})
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, countingHandler(&calls, 100), RetryPolicy{Attempts: 3, BaseDelay: time.Second}, nopLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

func TestStartForwarder_NonForwarderMode(t *testing.T) {
	bus := &EventBus{useForwarder: false}
	if err := bus.StartForwarder(context.Background()); err == nil {
		t.Fatal("expected error for non-forwarder EventBus")
	}
}

func TestPublishTx_RequiresTransaction(t *testing.T) {
	bus := &EventBus{log: nopLogger()}
	msg := message.NewMessage("id", nil)
	if err := bus.PublishTx(context.Background(), nil, "work_item.created", msg); err == nil {
		t.Fatal("expected error without a transaction")
	}
}

type deletedEvent struct {
	WorkItemID uuid.UUID `json:"work_item_id"`
}

func TestJSONMessage(t *testing.T) {
	id := uuid.New()
	msg, err := NewJSONMessage(deletedEvent{WorkItemID: id}, 2)
	if err != nil {
		t.Fatalf("NewJSONMessage: %v", err)
	}
	if msg.UUID == "" {
		t.Error("message has no id")
	}
	if got := msg.Metadata.Get(MetadataEventVersion); got != "2" {
		t.Errorf("event version: got %q, want 2", got)
	}

	got, err := DecodeJSON[deletedEvent](msg)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if got.WorkItemID != id {
		t.Errorf("work item id: got %s, want %s", got.WorkItemID, id)
	}
}

func TestNewJSONMessage_Unencodable(t *testing.T) {
	if _, err := NewJSONMessage(make(chan int), 1); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	msg := message.NewMessage("id", []byte("{not json"))
	if _, err := DecodeJSON[deletedEvent](msg); err == nil {
		t.Fatal("expected decode error")
	}
}

// Trace context injected on publish must survive the metadata round trip.
func TestTracePropagation(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	msg := message.NewMessage("id", nil)
	injectTrace(ctx, []*message.Message{msg})

	gotSpan := trace.SpanFromContext(extractTrace(context.Background(), msg))
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}
