package roshambo

import (
	"fmt"
	"strings"

	"github.com/aecgames/spielbridge/spiel"
)

// Iterated rock-paper-scissors. Both players commit a move each round,
// the state advances only once the joint action arrives.

const (
	Rock     = 0
	Paper    = 1
	Scissors = 2

	numMoves      = 3
	numPlayers    = 2
	DefaultRounds = 10

	noMove = -1
)

var moveNames = [numMoves]string{"rock", "paper", "scissors"}

// winMatrix[a][b] is player 0's reward when player 0 plays a and
// player 1 plays b.
var winMatrix = [numMoves][numMoves]float64{
	{0, -1, 1},
	{1, 0, -1},
	{-1, 1, 0},
}

func init() {
	spiel.Register("roshambo", func(params map[string]any) (spiel.Game, error) {
		return NewGame(spiel.IntParam(params, "rounds", DefaultRounds))
	})
}

type Game struct {
	rounds int
}

var _ spiel.Game = &Game{}

func NewGame(rounds int) (*Game, error) {
	if rounds <= 0 {
		return nil, fmt.Errorf("roshambo: rounds must be positive, got %d", rounds)
	}
	return &Game{rounds: rounds}, nil
}

func (g *Game) Name() string {
	return "roshambo"
}

func (g *Game) NumPlayers() int {
	return numPlayers
}

func (g *Game) NumDistinctActions() int {
	return numMoves
}

// One-hot of own previous move, one-hot of the opponent's previous
// move, and round progress.
func (g *Game) ObservationTensorShape() ([]int, error) {
	return []int{2*numMoves + 1}, nil
}

func (g *Game) MaxGameLength() int {
	return g.rounds
}

func (g *Game) NewInitialState() spiel.State {
	return &State{
		game:      g,
		lastMoves: [numPlayers]int{noMove, noMove},
	}
}

type State struct {
	game        *Game
	round       int
	lastMoves   [numPlayers]int
	lastRewards [numPlayers]float64
	scores      [numPlayers]float64
}

var _ spiel.State = &State{}

func (s *State) CurrentPlayer() int {
	if s.IsTerminal() {
		return spiel.TerminalPlayerID
	}
	return spiel.SimultaneousPlayerID
}

func (s *State) IsChanceNode() bool {
	return false
}

func (s *State) IsSimultaneousNode() bool {
	return !s.IsTerminal()
}

func (s *State) IsTerminal() bool {
	return s.round >= s.game.rounds
}

func (s *State) LegalActions(player int) []int {
	if s.IsTerminal() || player < 0 || player >= numPlayers {
		return nil
	}
	return []int{Rock, Paper, Scissors}
}

func (s *State) ChanceOutcomes() []spiel.ChanceOutcome {
	return nil
}

func (s *State) ApplyAction(action int) error {
	return fmt.Errorf("roshambo: joint actions required, got single action %d", action)
}

func (s *State) ApplyActions(actions []int) error {
	if s.IsTerminal() {
		return fmt.Errorf("roshambo: actions on terminal state")
	}
	if len(actions) != numPlayers {
		return fmt.Errorf("roshambo: want %d actions, got %d", numPlayers, len(actions))
	}
	for _, a := range actions {
		if a < 0 || a >= numMoves {
			return fmt.Errorf("roshambo: illegal move %d", a)
		}
	}
	reward := winMatrix[actions[0]][actions[1]]
	s.lastMoves = [numPlayers]int{actions[0], actions[1]}
	s.lastRewards = [numPlayers]float64{reward, -reward}
	s.scores[0] += reward
	s.scores[1] -= reward
	s.round++
	return nil
}

func (s *State) ObservationTensor(player int) ([]float64, error) {
	if player < 0 || player >= numPlayers {
		return nil, fmt.Errorf("roshambo: no observation for player %d", player)
	}
	obs := make([]float64, 2*numMoves+1)
	if own := s.lastMoves[player]; own != noMove {
		obs[own] = 1
	}
	if opp := s.lastMoves[1-player]; opp != noMove {
		obs[numMoves+opp] = 1
	}
	obs[2*numMoves] = float64(s.round) / float64(s.game.rounds)
	return obs, nil
}

func (s *State) Rewards() []float64 {
	return []float64{s.lastRewards[0], s.lastRewards[1]}
}

func (s *State) Returns() []float64 {
	return []float64{s.scores[0], s.scores[1]}
}

func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %d/%d score %+.0f:%+.0f", s.round, s.game.rounds, s.scores[0], s.scores[1])
	if s.lastMoves[0] != noMove {
		fmt.Fprintf(&b, " last %s vs %s", moveNames[s.lastMoves[0]], moveNames[s.lastMoves[1]])
	}
	return b.String()
}
