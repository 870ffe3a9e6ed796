package tracing

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.OtelConfig{Enabled: false})

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_Sampling(t *testing.T) {
	for _, tc := range []struct {
		name     string
		ratio    float64
		recorded int
	}{
		{"Always", 1, 1},
		{"Never", 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()

			provider, err := NewProvider(config.OtelConfig{ServiceName: "test", SamplerRatio: tc.ratio}, sdktrace.WithSpanProcessor(recorder))
			require.NoError(t, err)
			defer provider.Shutdown(context.Background())

			_, span := provider.Tracer("test").Start(context.Background(), "submit-order")
			span.End()

			assert.Len(t, recorder.Ended(), tc.recorded)
		})
	}
}
