package pig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aecgames/spielbridge/spiel"
)

func TestGameDescription(t *testing.T) {
	g, err := NewGame(100)
	require.NoError(t, err)
	require.Equal(t, 2, g.NumPlayers())
	require.Equal(t, 2, g.NumDistinctActions())

	_, err = NewGame(-1)
	require.Error(t, err)
}

func TestRollLeadsToChanceNode(t *testing.T) {
	g, err := NewGame(100)
	require.NoError(t, err)
	s := g.NewInitialState()

	require.Equal(t, 0, s.CurrentPlayer())
	require.Equal(t, []int{ActionRoll}, s.LegalActions(0), "nothing banked, holding is pointless")
	require.False(t, s.IsChanceNode())

	require.NoError(t, s.ApplyAction(ActionRoll))
	require.True(t, s.IsChanceNode())
	require.Equal(t, spiel.ChancePlayerID, s.CurrentPlayer())
	require.Empty(t, s.LegalActions(0))

	outcomes := s.ChanceOutcomes()
	require.Len(t, outcomes, 6)
	total := 0.0
	for _, o := range outcomes {
		total += o.Prob
	}
	require.InDelta(t, 1.0, total, 1e-9)
}

func TestRollOutcomes(t *testing.T) {
	t.Run("a non-one accumulates the turn total", func(t *testing.T) {
		g, err := NewGame(100)
		require.NoError(t, err)
		s := g.NewInitialState()
		require.NoError(t, s.ApplyAction(ActionRoll))
		require.NoError(t, s.ApplyAction(3)) // face 4
		require.False(t, s.IsChanceNode())
		require.Equal(t, 0, s.CurrentPlayer(), "same player keeps the turn")
		require.Equal(t, []int{ActionRoll, ActionHold}, s.LegalActions(0))
	})

	t.Run("a one forfeits the turn", func(t *testing.T) {
		g, err := NewGame(100)
		require.NoError(t, err)
		s := g.NewInitialState()
		require.NoError(t, s.ApplyAction(ActionRoll))
		require.NoError(t, s.ApplyAction(0)) // face 1
		require.Equal(t, 1, s.CurrentPlayer(), "turn passes")
		require.Equal(t, []int{ActionRoll}, s.LegalActions(1))
	})

	t.Run("outcomes out of range are rejected", func(t *testing.T) {
		g, err := NewGame(100)
		require.NoError(t, err)
		s := g.NewInitialState()
		require.NoError(t, s.ApplyAction(ActionRoll))
		require.Error(t, s.ApplyAction(6))
	})
}

func TestHoldBanksAndWins(t *testing.T) {
	g, err := NewGame(10)
	require.NoError(t, err)
	s := g.NewInitialState()

	// roll a 6 twice, then hold: 12 >= 10
	require.NoError(t, s.ApplyAction(ActionRoll))
	require.NoError(t, s.ApplyAction(5))
	require.NoError(t, s.ApplyAction(ActionRoll))
	require.NoError(t, s.ApplyAction(5))
	require.False(t, s.IsTerminal())

	require.NoError(t, s.ApplyAction(ActionHold))
	require.True(t, s.IsTerminal())
	require.Equal(t, spiel.TerminalPlayerID, s.CurrentPlayer())
	require.Equal(t, []float64{1, -1}, s.Rewards())
	require.Error(t, s.ApplyAction(ActionRoll), "terminal state")
}

func TestObservationPerspective(t *testing.T) {
	g, err := NewGame(10)
	require.NoError(t, err)
	s := g.NewInitialState()
	require.NoError(t, s.ApplyAction(ActionRoll))
	require.NoError(t, s.ApplyAction(4)) // face 5
	require.NoError(t, s.ApplyAction(ActionHold))

	obs0, err := s.ObservationTensor(0)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0, 0, 0}, obs0, "player 0 banked 5, player 1 to move")

	obs1, err := s.ObservationTensor(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.5, 0, 1}, obs1)
}

func TestRegistered(t *testing.T) {
	g, err := spiel.LoadGame("pig", map[string]any{"goal": 50})
	require.NoError(t, err)
	require.Equal(t, "pig", g.Name())
	require.Equal(t, 400, g.MaxGameLength())
}
