// Package telemetry records gigflow counters and log events against the
// global OpenTelemetry providers. Init installs SDK providers that export
// over OTLP/HTTP; without it every record is a no-op.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterRecorderName = "gigflow"
	loggerName        = "gigflow"
)

type recorderInstruments struct {
	hireTotal      metric.Int64Counter
	hireAttempts   metric.Int64Histogram
	bidCreateTotal metric.Int64Counter
	notifyTotal    metric.Int64Counter
}

var (
	instMu sync.Mutex
	inst   *recorderInstruments
)

// instruments returns the recorder instruments, creating them against the
// current global MeterProvider on first use after start or Install.
func instruments() *recorderInstruments {
	instMu.Lock()
	defer instMu.Unlock()
	if inst == nil {
		inst = newInstruments(otel.GetMeterProvider().Meter(meterRecorderName))
	}
	return inst
}

func resetInstruments() {
	instMu.Lock()
	inst = nil
	instMu.Unlock()
}

func newInstruments(m metric.Meter) *recorderInstruments {
	var ri recorderInstruments
	ri.hireTotal, _ = m.Int64Counter("gigflow.hire.total",
		metric.WithDescription("Total hire and cancel coordinations by outcome"),
	)
	ri.hireAttempts, _ = m.Int64Histogram("gigflow.hire.attempts",
		metric.WithDescription("Atomic scope attempts per coordination"),
	)
	ri.bidCreateTotal, _ = m.Int64Counter("gigflow.bid.create.total",
		metric.WithDescription("Total bid submissions by outcome"),
	)
	ri.notifyTotal, _ = m.Int64Counter("gigflow.notify.total",
		metric.WithDescription("Total notification dispatches"),
	)
	return &ri
}

func statusStr(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func emit(ctx context.Context, body string, sev otellog.Severity, attrs ...otellog.KeyValue) {
	logger := global.GetLoggerProvider().Logger(loggerName)
	var r otellog.Record
	r.SetBody(otellog.StringValue(body))
	r.SetSeverity(sev)
	r.AddAttributes(attrs...)
	logger.Emit(ctx, r)
}

func errKV(err error) otellog.KeyValue {
	if err != nil {
		return otellog.String("error", err.Error())
	}
	return otellog.String("error", "")
}

func severity(err error) otellog.Severity {
	if err != nil {
		return otellog.SeverityError
	}
	return otellog.SeverityInfo
}

// RecordCoordination records one hire or cancel coordination. op is "hire"
// or "cancel"; outcome is a short classification such as "ok" or "conflict".
func RecordCoordination(ctx context.Context, op, gigID, outcome string, attempts int, err error) {
	inst := instruments()
	inst.hireTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("outcome", outcome),
		),
	)
	inst.hireAttempts.Record(ctx, int64(attempts),
		metric.WithAttributes(attribute.String("op", op)),
	)
	emit(ctx, "gig."+op, severity(err),
		otellog.String("gig_id", gigID),
		otellog.String("outcome", outcome),
		otellog.Int("attempts", attempts),
		errKV(err),
	)
}

// RecordBidCreate records a bid submission.
func RecordBidCreate(ctx context.Context, gigID, outcome string, err error) {
	inst := instruments()
	inst.bidCreateTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
	emit(ctx, "bid.create", severity(err),
		otellog.String("gig_id", gigID),
		otellog.String("outcome", outcome),
		errKV(err),
	)
}

// RecordNotify records a notification dispatch to a freelancer.
func RecordNotify(ctx context.Context, eventType, freelancerID string, err error) {
	inst := instruments()
	status := statusStr(err)
	inst.notifyTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("type", eventType),
			attribute.String("status", status),
		),
	)
	emit(ctx, "notify.dispatch", severity(err),
		otellog.String("type", eventType),
		otellog.String("freelancer_id", freelancerID),
		otellog.String("status", status),
		errKV(err),
	)
}
