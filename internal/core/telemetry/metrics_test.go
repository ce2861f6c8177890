package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	t.Run("None", func(t *testing.T) {
		meter, shutdown, err := InitMetrics("none", "clearance-tracker")
		require.NoError(t, err)
		require.NotNil(t, meter)

		counter, err := meter.Int64Counter("shipments.mutations")
		require.NoError(t, err)
		counter.Add(context.Background(), 1)

		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Stdout", func(t *testing.T) {
		meter, shutdown, err := InitMetrics("stdout", "clearance-tracker")
		require.NoError(t, err)
		require.NotNil(t, meter)

		_, err = meter.Int64Counter("tracking.lookups")
		require.NoError(t, err)

		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, _, err := InitMetrics("otlp", "clearance-tracker")
		assert.ErrorContains(t, err, "unsupported metrics exporter")
	})
}
