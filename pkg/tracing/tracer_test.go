package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewProvider_SetsGlobalProviderAndResource(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	recorder := tracetest.NewSpanRecorder()
	tp, err := newProvider("inventory-test", "0.0.1", sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Shutdown(context.Background(), tp) })

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "op", ended[0].Name())

	var serviceName string
	for _, attr := range ended[0].Resource().Attributes() {
		if attr.Key == "service.name" {
			serviceName = attr.Value.AsString()
		}
	}
	assert.Equal(t, "inventory-test", serviceName)
}

func TestShutdown_IgnoresForeignProviders(t *testing.T) {
	assert.NoError(t, Shutdown(context.Background(), noop.NewTracerProvider()))
}
