package cmd_test

import (
	"testing"

	"riderdispatch/cmd"
	"riderdispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DISPATCH_FANOUT", "")
	t.Setenv("DISPATCH_BATCH", "")
	t.Setenv("DISPATCH_SCHEDULE", "")
	t.Setenv("KAFKA_ORDER_CHANGED_TOPIC", "")

	config, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, 3, config.DispatchFanout)
	assert.Equal(t, 20, config.DispatchBatch)
	assert.Equal(t, jobs.DefaultDispatchSchedule, config.DispatchSchedule)
	assert.Equal(t, "order.changed", config.KafkaOrderChangedTopic)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_USER", "dispatch")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "riders")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("KAFKA_HOST", "kafka:9092")
	t.Setenv("DISPATCH_FANOUT", "5")
	t.Setenv("DISPATCH_BATCH", "50")
	t.Setenv("DISPATCH_SCHEDULE", "*/2 * * * * *")

	config, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", config.HTTPPort)
	assert.Equal(t, "kafka:9092", config.KafkaHost)
	assert.Equal(t, 5, config.DispatchFanout)
	assert.Equal(t, 50, config.DispatchBatch)
	assert.Equal(t, "*/2 * * * * *", config.DispatchSchedule)
	assert.Equal(t, "host=db port=6432 user=dispatch password=pw dbname=riders sslmode=require", config.DSN())
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := cmd.LoadConfig()

		require.ErrorIs(t, err, cmd.ErrJWTSecretIsRequired)
	})

	t.Run("bad fanout", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DISPATCH_FANOUT", "zero")

		_, err := cmd.LoadConfig()

		require.ErrorContains(t, err, "DISPATCH_FANOUT")
	})

	t.Run("non-positive batch", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DISPATCH_FANOUT", "")
		t.Setenv("DISPATCH_BATCH", "0")

		_, err := cmd.LoadConfig()

		require.ErrorContains(t, err, "DISPATCH_BATCH")
	})
}
