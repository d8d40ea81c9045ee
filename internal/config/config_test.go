package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_AcceptsSupportedDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres"} {
		cfg := NewForTesting()
		cfg.DBDriver = driver
		if driver == "postgres" {
			cfg.PostgresDSN = "postgres://localhost:5432/compass"
		}
		assert.NoError(t, cfg.ResolveDefaults(), driver)
	}
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "spanner"
	require.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_PostgresRequiresDSN(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "postgres"
	cfg.PostgresDSN = ""
	require.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_RejectsBadTimeZone(t *testing.T) {
	cfg := NewForTesting()
	cfg.TimeZone = "Not/AZone"
	require.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_RejectsNonPositiveHistoryLimit(t *testing.T) {
	cfg := NewForTesting()
	cfg.HistoryLimit = 0
	require.Error(t, cfg.ResolveDefaults())
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := NewForTesting()
	cfg.TimeZone = "garbage"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := NewForTesting()
	cfg.HTTPPort = 9191
	assert.Equal(t, ":9191", cfg.GetHTTPAddr())
}
