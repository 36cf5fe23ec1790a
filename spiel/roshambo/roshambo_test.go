package roshambo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aecgames/spielbridge/spiel"
)

func TestGameDescription(t *testing.T) {
	g, err := NewGame(5)
	require.NoError(t, err)
	require.Equal(t, 2, g.NumPlayers())
	require.Equal(t, 3, g.NumDistinctActions())
	require.Equal(t, 5, g.MaxGameLength())

	_, err = NewGame(0)
	require.Error(t, err)
}

func TestSimultaneousNode(t *testing.T) {
	g, err := NewGame(2)
	require.NoError(t, err)
	s := g.NewInitialState()

	require.True(t, s.IsSimultaneousNode())
	require.Equal(t, spiel.SimultaneousPlayerID, s.CurrentPlayer())
	require.Equal(t, []int{Rock, Paper, Scissors}, s.LegalActions(0))
	require.Equal(t, []int{Rock, Paper, Scissors}, s.LegalActions(1))
	require.Error(t, s.ApplyAction(Rock), "single actions rejected")
}

func TestRoundsAndRewards(t *testing.T) {
	g, err := NewGame(3)
	require.NoError(t, err)
	s := g.NewInitialState()

	require.NoError(t, s.ApplyActions([]int{Rock, Scissors}))
	require.Equal(t, []float64{1, -1}, s.Rewards())

	require.NoError(t, s.ApplyActions([]int{Rock, Paper}))
	require.Equal(t, []float64{-1, 1}, s.Rewards())

	require.NoError(t, s.ApplyActions([]int{Paper, Paper}))
	require.Equal(t, []float64{0, 0}, s.Rewards())

	require.True(t, s.IsTerminal())
	require.False(t, s.IsSimultaneousNode())
	require.Equal(t, []float64{0, 0}, s.Returns(), "one win each")
	require.Error(t, s.ApplyActions([]int{Rock, Rock}))
}

func TestIllegalJointActions(t *testing.T) {
	g, err := NewGame(1)
	require.NoError(t, err)
	s := g.NewInitialState()
	require.Error(t, s.ApplyActions([]int{Rock}), "missing action")
	require.Error(t, s.ApplyActions([]int{Rock, 5}), "unknown move")
}

func TestObservationEncoding(t *testing.T) {
	g, err := NewGame(4)
	require.NoError(t, err)
	s := g.NewInitialState()

	obs, err := s.ObservationTensor(0)
	require.NoError(t, err)
	require.Len(t, obs, 7)
	require.Zero(t, obs[6], "no rounds played")

	require.NoError(t, s.ApplyActions([]int{Paper, Scissors}))
	obs, err = s.ObservationTensor(0)
	require.NoError(t, err)
	require.Equal(t, 1.0, obs[Paper], "own move")
	require.Equal(t, 1.0, obs[3+Scissors], "opponent move")
	require.Equal(t, 0.25, obs[6], "round progress")

	// player 1 sees the mirrored encoding
	obs, err = s.ObservationTensor(1)
	require.NoError(t, err)
	require.Equal(t, 1.0, obs[Scissors])
	require.Equal(t, 1.0, obs[3+Paper])
}

func TestRegistered(t *testing.T) {
	g, err := spiel.LoadGame("roshambo", map[string]any{"rounds": 7})
	require.NoError(t, err)
	require.Equal(t, 7, g.MaxGameLength())
}
