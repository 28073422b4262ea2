// Package telemetry reports finished build stages through the logger.
package telemetry

import (
	"context"
	"fmt"

	"github.com/TopPano/providence-engine/internal/core/ports"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// BuildIDKey is the span attribute carrying the build identifier.
const BuildIDKey attribute.Key = "build.id"

// Bridge implements sdktrace.SpanProcessor by logging each ended span.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a Bridge logging to logger.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span's name, duration and outcome.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	args := []any{"stage", s.Name(), "duration", s.EndTime().Sub(s.StartTime())}
	for _, kv := range s.Attributes() {
		if kv.Key == BuildIDKey {
			args = append(args, "build_id", kv.Value.AsString())
		}
	}

	log := b.logger.With(args...)
	if s.Status().Code == codes.Error {
		log.Warn(fmt.Sprintf("%s failed: %s", s.Name(), s.Status().Description))
		return
	}
	log.Info(s.Name() + " finished")
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// NewProvider returns a tracer provider whose spans are reported by a Bridge.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(logger)))
}

// Tracer returns the tracer used by the build pipeline.
func Tracer(provider trace.TracerProvider) trace.Tracer {
	return provider.Tracer("github.com/TopPano/providence-engine")
}
