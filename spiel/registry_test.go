package spiel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGame struct {
	Game
	rounds int
}

func TestLoadGame(t *testing.T) {
	Register("fake", func(params map[string]any) (Game, error) {
		rounds := IntParam(params, "rounds", 3)
		if rounds > 10 {
			return nil, errors.New("too many rounds")
		}
		return &fakeGame{rounds: rounds}, nil
	})

	t.Run("loads with defaults", func(t *testing.T) {
		g, err := LoadGame("fake", nil)
		require.NoError(t, err)
		require.Equal(t, 3, g.(*fakeGame).rounds)
	})

	t.Run("passes parameters through", func(t *testing.T) {
		g, err := LoadGame("fake", map[string]any{"rounds": 5})
		require.NoError(t, err)
		require.Equal(t, 5, g.(*fakeGame).rounds)
	})

	t.Run("wraps factory errors", func(t *testing.T) {
		_, err := LoadGame("fake", map[string]any{"rounds": 11})
		require.ErrorContains(t, err, "too many rounds")
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := LoadGame("no-such-game", nil)
		require.ErrorContains(t, err, "unknown game")
	})

	t.Run("listed", func(t *testing.T) {
		require.Contains(t, RegisteredGames(), "fake")
	})
}

func TestIntParam(t *testing.T) {
	require.Equal(t, 7, IntParam(nil, "k", 7))
	require.Equal(t, 1, IntParam(map[string]any{"k": 1}, "k", 7))
	require.Equal(t, 2, IntParam(map[string]any{"k": int64(2)}, "k", 7))
	require.Equal(t, 3, IntParam(map[string]any{"k": float64(3)}, "k", 7))
	require.Equal(t, 7, IntParam(map[string]any{"k": "nope"}, "k", 7))
}
