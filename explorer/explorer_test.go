package explorer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aecgames/spielbridge/spiel/tictactoe"
)

func postJSON(t *testing.T, server *httptest.Server, path string, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := make(map[string]any)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestExplorer(t *testing.T) {
	e := NewExplorer(tictactoe.NewGame(), 0)
	server := httptest.NewServer(e.Handler())
	defer server.Close()

	t.Run("reset", func(t *testing.T) {
		resp, state := postJSON(t, server, "/reset", `{"seed": 1}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "player_0", state["selection"])
		require.Equal(t, "tictactoe", state["game"])
		require.Len(t, state["agents"], 2)
	})

	t.Run("step", func(t *testing.T) {
		resp, state := postJSON(t, server, "/step", `{"action": 4}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "player_1", state["selection"])
		require.Contains(t, state["render"], "x")
	})

	t.Run("illegal step", func(t *testing.T) {
		resp, body := postJSON(t, server, "/step", `{"action": 4}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, body, "error")
	})

	t.Run("missing action", func(t *testing.T) {
		resp, _ := postJSON(t, server, "/step", `{}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("state", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/state")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("observe", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/observe/player_0")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := struct {
			Agent       string    `json:"agent"`
			Observation []float64 `json:"observation"`
		}{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "player_0", body.Agent)
		require.Len(t, body.Observation, 27)
	})

	t.Run("observe unknown agent", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/observe/nobody")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
