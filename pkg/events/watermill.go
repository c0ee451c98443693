// Package events is the outbox transport for domain events, built on
// Watermill's PostgreSQL pub/sub.
//
// Repositories publish with PublishTx inside the transaction that writes the
// row, so an event exists if and only if the change committed. With the
// forwarder enabled (API process) messages land in a durable queue table and
// a background daemon moves them to their target topic. The worker subscribes
// with a consumer group, so each message is handled by one worker instance.
//
// Handlers must be idempotent: a failing handler is retried with exponential
// backoff and then nacked, which makes Watermill redeliver it.
//
// Trace context travels in message metadata, so a subscriber span continues
// the request span that produced the event.
package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/worktrack/pkg/config"
	"github.com/ghuser/worktrack/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	errBufferSize   = 100

	forwarderTopic         = "_forwarder_queue"
	forwarderConsumerGroup = "forwarder-consumer"

	// MetadataEventVersion carries the payload schema version.
	MetadataEventVersion = "event_version"
)

// RetryPolicy controls how often a failing handler runs before its message is nacked.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultRetryPolicy runs a handler up to three times, waiting 1s then 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

// EventBus publishes and consumes domain events through PostgreSQL.
type EventBus struct {
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	log        logger.Logger
	wlog       watermill.LoggerAdapter
	retry      RetryPolicy
	wg         sync.WaitGroup

	useForwarder bool
}

// NewEventBus connects to cfg.DatabaseURL and publishes directly to target
// topics. The worker uses it to consume events; instances sharing
// cfg.ServiceName share one consumer group.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

// NewEventBusWithForwarder is NewEventBus with publishes routed through the
// forwarder queue. Call StartForwarder before serving traffic.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

func newEventBus(cfg *config.Config, log logger.Logger, useForwarder bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	wlog := &watermillLogger{log: log}

	pub, err := watermillsql.NewPublisher(db, publisherConfig(true), wlog)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(db, subscriberConfig(cfg.ServiceName+"-consumer"), wlog)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		publisher:    withForwarder(pub, useForwarder),
		subscriber:   sub,
		db:           db,
		log:          log,
		wlog:         wlog,
		retry:        DefaultRetryPolicy,
		useForwarder: useForwarder,
	}, nil
}

func publisherConfig(autoInit bool) watermillsql.PublisherConfig {
	return watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: autoInit,
	}
}

func subscriberConfig(group string) watermillsql.SubscriberConfig {
	return watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}
}

// withForwarder wraps pub so messages are enveloped into the forwarder queue.
func withForwarder(pub message.Publisher, enabled bool) message.Publisher {
	if !enabled {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// StartForwarder runs the daemon that drains the forwarder queue into target
// topics. It returns once the daemon is running. Valid once, and only on a bus
// built with NewEventBusWithForwarder.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.useForwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	fwdSub, err := watermillsql.NewSubscriber(q.db, subscriberConfig(forwarderConsumerGroup), q.wlog)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	targetPub, err := watermillsql.NewPublisher(q.db, publisherConfig(true), q.wlog)
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// PublishTx publishes msgs inside tx so they commit or roll back with the
// surrounding writes. Tables already exist by then, so the tx publisher does
// not initialize schema.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	if tx == nil {
		return fmt.Errorf("events: publish to %s: no transaction", topic)
	}
	pub, err := watermillsql.NewPublisher(tx, publisherConfig(false), q.wlog)
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}
	injectTrace(ctx, msgs)
	if err := withForwarder(pub, q.useForwarder).Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}

// Publish sends msgs to topic outside any transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe runs handler for every message on topic until ctx is cancelled
// or the bus closes. The handler context carries the publisher's trace.
//
// A nil return acks the message. Errors are retried per the bus RetryPolicy;
// after the last attempt the message is nacked and the error is sent on the
// returned channel (buffered, errors dropped with a log line when full).
// Callers must drain it:
//
//	errCh, err := bus.Subscribe(ctx, topic, handler)
//	go func() { for err := range errCh { log.ErrorContext(ctx, "subscriber error", "error", err) } }()
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBufferSize)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)
			if err := retryWithBackoff(msgCtx, msg, handler, q.retry, q.log); err != nil {
				msg.Nack()
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
						"error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// retryWithBackoff runs handler until it succeeds or policy.Attempts is reached,
// doubling the delay after each failure.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	policy RetryPolicy,
	log logger.Logger,
) error {
	attempts := max(policy.Attempts, 1)
	delay := policy.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"message_id", msg.UUID,
			"attempt", attempt,
			"max_attempts", attempts,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", attempts, err)
}

// NewJSONMessage encodes event as a message payload tagged with version.
func NewJSONMessage(event any, version int) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %T: %w", event, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(version))
	return msg, nil
}

// DecodeJSON decodes a message payload into T.
func DecodeJSON[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("events: decode %T: %w", v, err)
	}
	return v, nil
}

// Ping checks the database connection used by the bus.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, waits up to 30s for in-flight
// handlers, then closes the publisher and the database connection.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}

// watermillLogger adapts logger.Logger to watermill.LoggerAdapter. Watermill
// is chatty at info level, so its Info lines are logged at debug.
type watermillLogger struct{ log logger.Logger }

func (a *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}

func (a *watermillLogger) Info(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
