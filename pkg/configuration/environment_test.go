package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	opts := DatabaseOptions{
		Name:     "worktrack",
		Host:     "db.internal",
		Port:     "6432",
		User:     "tracker",
		Password: "secret",
	}
	require.Equal(t,
		"host=db.internal port=6432 user=tracker dbname=worktrack password=secret sslmode=disable",
		opts.ConnectionString(),
	)
}

func TestLogrusLogLevel(t *testing.T) {
	c := &Configuration{LogLevel: "debug"}
	require.Equal(t, "debug", c.LogrusLogLevel().String())

	c.LogLevel = "bogus"
	require.Equal(t, "error", c.LogrusLogLevel().String())
}
