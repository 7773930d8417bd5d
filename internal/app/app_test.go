package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroboard/internal/domain"
)

func TestStartStubServesBackend(t *testing.T) {
	address, err := startStub(t.TempDir())
	require.NoError(t, err)

	resp, err := http.Get(address + "/dataset/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot domain.DatasetSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	assert.Equal(t, 0, snapshot.FileCount)
}
