package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsStartupErrors(t *testing.T) {
	t.Run("unknown data backend", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("DATA_BACKEND", "cassandra")

		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open data stores")
		assert.Contains(t, err.Error(), `unknown DATA_BACKEND "cassandra"`)
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("STORAGE_BACKEND", "ftp")

		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize file storage")
	})
}
