package health

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBCheck(t *testing.T) {
	t.Run("Nil pool", func(t *testing.T) {
		require.Error(t, dbCheck(nil)(t.Context()))
	})

	t.Run("Ping", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing()
		require.NoError(t, dbCheck(db)(t.Context()))

		mock.ExpectPing().WillReturnError(errors.New("down"))
		assert.ErrorContains(t, dbCheck(db)(t.Context()), "down")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKafkaCheck_NoBrokerReachable(t *testing.T) {
	err := kafkaCheck([]string{"127.0.0.1:1"})(t.Context())
	require.ErrorContains(t, err, "no kafka broker reachable")
}

func TestNewHealthHandler(t *testing.T) {
	cfg := &config.Config{}
	cfg.Otel.ServiceName = "storefront"
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	h, err := NewHealthHandler(cfg, &Endpoints{})

	require.NoError(t, err)
	assert.NotNil(t, h)
}
