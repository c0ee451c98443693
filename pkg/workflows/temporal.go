// Package workflows connects the API and the worker to Temporal.
package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/pkg/telemetry"
)

// TemporalConfig locates the Temporal frontend and the queue the tracker's
// workflows run on.
type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

// TemporalClient is a connected SDK client bound to one task queue.
type TemporalClient struct {
	Client    client.Client
	TaskQueue string
	log       logger.Logger
}

// NewTemporalClient dials Temporal. Spans and SDK metrics go to the global
// OTel providers; workers built with NewWorker inherit both.
func NewTemporalClient(ctx context.Context, cfg TemporalConfig, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("github.com/ghuser/worktrack/temporal"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal tracing interceptor: %w", err)
	}

	log = log.With("namespace", cfg.Namespace, "task_queue", cfg.TaskQueue)
	c, err := client.DialContext(ctx, client.Options{
		HostPort:     cfg.HostPort,
		Namespace:    cfg.Namespace,
		Logger:       temporalLogger{log},
		Interceptors: []interceptor.ClientInterceptor{tracing},
		MetricsHandler: temporalotel.NewMetricsHandler(temporalotel.MetricsHandlerOptions{
			Meter: telemetry.Meter("temporal"),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal at %s: %w", cfg.HostPort, err)
	}

	log.Info("temporal client connected", "host_port", cfg.HostPort)
	return &TemporalClient{Client: c, TaskQueue: cfg.TaskQueue, log: log}, nil
}

// NewWorker returns a worker polling the client's task queue. Register
// workflows and activities on it before calling Start.
func (tc *TemporalClient) NewWorker() worker.Worker {
	return worker.New(tc.Client, tc.TaskQueue, worker.Options{})
}

// Ping reports whether the Temporal frontend is serving.
func (tc *TemporalClient) Ping(ctx context.Context) error {
	if _, err := tc.Client.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		return fmt.Errorf("temporal health check: %w", err)
	}
	return nil
}

func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}

// temporalLogger routes SDK logs through logger.Logger. The SDK is chatty at
// info, so its info lines are logged at debug.
type temporalLogger struct {
	log logger.Logger
}

var (
	_ temporallog.Logger     = temporalLogger{}
	_ temporallog.WithLogger = temporalLogger{}
)

func (l temporalLogger) Debug(msg string, keyvals ...any) { l.log.Debug(msg, keyvals...) }
func (l temporalLogger) Info(msg string, keyvals ...any)  { l.log.Debug(msg, keyvals...) }
func (l temporalLogger) Warn(msg string, keyvals ...any)  { l.log.Warn(msg, keyvals...) }
func (l temporalLogger) Error(msg string, keyvals ...any) { l.log.Error(msg, keyvals...) }

// With lets workflow code bind fields such as workflow_id.
func (l temporalLogger) With(keyvals ...any) temporallog.Logger {
	return temporalLogger{l.log.With(keyvals...)}
}
