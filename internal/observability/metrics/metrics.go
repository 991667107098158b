package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments. Every recorder is safe to
// call on a nil receiver and never returns an error to the caller.
type Metrics struct {
	catalogWrites     metric.Int64Counter
	notesCreated      metric.Int64Counter
	pdfsGenerated     metric.Int64Counter
	pdfsDownloaded    metric.Int64Counter
	notificationsSent metric.Int64Counter
	notesResent       metric.Int64Counter
	emailsSent        metric.Int64Counter
	emailFailures     metric.Int64Counter
	noteGeneration    metric.Float64Histogram
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "notaventa"
	}
	meter := provider.Meter(name)

	catalogWrites, err := meter.Int64Counter("notaventa_catalog_writes_total")
	if err != nil {
		return nil, err
	}
	notesCreated, err := meter.Int64Counter("notaventa_notes_created_total")
	if err != nil {
		return nil, err
	}
	pdfsGenerated, err := meter.Int64Counter("notaventa_pdfs_generated_total")
	if err != nil {
		return nil, err
	}
	pdfsDownloaded, err := meter.Int64Counter("notaventa_pdfs_downloaded_total")
	if err != nil {
		return nil, err
	}
	notificationsSent, err := meter.Int64Counter("notaventa_notifications_sent_total")
	if err != nil {
		return nil, err
	}
	notesResent, err := meter.Int64Counter("notaventa_notifications_resent_total")
	if err != nil {
		return nil, err
	}
	emailsSent, err := meter.Int64Counter("notaventa_emails_sent_total")
	if err != nil {
		return nil, err
	}
	emailFailures, err := meter.Int64Counter("notaventa_email_failures_total")
	if err != nil {
		return nil, err
	}
	noteGeneration, err := meter.Float64Histogram("notaventa_note_generation_ms")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		catalogWrites:     catalogWrites,
		notesCreated:      notesCreated,
		pdfsGenerated:     pdfsGenerated,
		pdfsDownloaded:    pdfsDownloaded,
		notificationsSent: notificationsSent,
		notesResent:       notesResent,
		emailsSent:        emailsSent,
		emailFailures:     emailFailures,
		noteGeneration:    noteGeneration,
	}, nil
}

// RecordCatalogWrite increments catalog mutation counts.
func (m *Metrics) RecordCatalogWrite(ctx context.Context, entity, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("entity", strings.TrimSpace(entity)),
		attribute.String("operation", strings.TrimSpace(operation)),
	)
	m.catalogWrites.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordNoteCreated increments created note counts.
func (m *Metrics) RecordNoteCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.notesCreated.Add(ctx, 1)
}

// RecordPDFGenerated increments generated PDF counts.
func (m *Metrics) RecordPDFGenerated(ctx context.Context) {
	if m == nil {
		return
	}
	m.pdfsGenerated.Add(ctx, 1)
}

// RecordPDFDownloaded increments downloaded PDF counts.
func (m *Metrics) RecordPDFDownloaded(ctx context.Context) {
	if m == nil {
		return
	}
	m.pdfsDownloaded.Add(ctx, 1)
}

// RecordNotificationSent increments published notification counts.
func (m *Metrics) RecordNotificationSent(ctx context.Context) {
	if m == nil {
		return
	}
	m.notificationsSent.Add(ctx, 1)
}

// RecordNoteResent increments resend counts.
func (m *Metrics) RecordNoteResent(ctx context.Context) {
	if m == nil {
		return
	}
	m.notesResent.Add(ctx, 1)
}

// RecordEmailSent increments delivered email counts.
func (m *Metrics) RecordEmailSent(ctx context.Context) {
	if m == nil {
		return
	}
	m.emailsSent.Add(ctx, 1)
}

// RecordEmailFailure increments failed email counts.
func (m *Metrics) RecordEmailFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.emailFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordNoteGeneration records the end-to-end note creation latency.
func (m *Metrics) RecordNoteGeneration(ctx context.Context, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.noteGeneration.Record(ctx, float64(elapsed.Milliseconds()))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"entity":      {},
	"operation":   {},
	"endpoint":    {},
	"status_code": {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
