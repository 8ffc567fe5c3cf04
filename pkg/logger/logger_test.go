package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitWithWriter_AddsServiceField(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "inventory-test")
	t.Cleanup(func() { Logger = zerolog.Nop() })

	Info(context.Background()).Int("item_id", 4).Msg("Item added")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "inventory-test", line["service"])
	assert.Equal(t, "Item added", line["message"])
	assert.Equal(t, float64(4), line["item_id"])
	assert.NotContains(t, line, "trace_id")
}

func TestWithContext_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "inventory-test")
	t.Cleanup(func() { Logger = zerolog.Nop() })

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	Warn(ctx).Msg("traced")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, span.SpanContext().TraceID().String(), line["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), line["span_id"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	SetLevel("WARN")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
