package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	assert.False(t, Enabled())

	shutdown, err := Setup(context.Background(), "holdbot")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestResource(t *testing.T) {
	r, err := newResource("holdbot")
	require.NoError(t, err)
	assert.Contains(t, r.String(), "service.name=holdbot")
}
