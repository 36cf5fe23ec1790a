package pig

import (
	"fmt"

	"github.com/aecgames/spielbridge/spiel"
)

// Dice game Pig. The mover either banks the turn total (hold) or rolls
// again; rolling hands control to a chance node that resolves the die.
// A roll of 1 forfeits the turn total.

const (
	ActionRoll = 0
	ActionHold = 1

	numFaces    = 6
	numPlayers  = 2
	DefaultGoal = 100

	noWinner = -1
)

func init() {
	spiel.Register("pig", func(params map[string]any) (spiel.Game, error) {
		return NewGame(spiel.IntParam(params, "goal", DefaultGoal))
	})
}

type Game struct {
	goal int
}

var _ spiel.Game = &Game{}

func NewGame(goal int) (*Game, error) {
	if goal <= 0 {
		return nil, fmt.Errorf("pig: goal must be positive, got %d", goal)
	}
	return &Game{goal: goal}, nil
}

func (g *Game) Name() string {
	return "pig"
}

func (g *Game) NumPlayers() int {
	return numPlayers
}

func (g *Game) NumDistinctActions() int {
	return 2
}

// Mover's score, opponent's score, turn total, all normalized by the
// goal, plus a to-move indicator.
func (g *Game) ObservationTensorShape() ([]int, error) {
	return []int{4}, nil
}

// Loose bound: every banked point costs at least one decision and one
// chance transition.
func (g *Game) MaxGameLength() int {
	return 8 * g.goal
}

func (g *Game) NewInitialState() spiel.State {
	return &State{game: g, winner: noWinner}
}

type State struct {
	game      *Game
	scores    [numPlayers]int
	turnTotal int
	mover     int
	rolling   bool
	winner    int
}

var _ spiel.State = &State{}

func (s *State) CurrentPlayer() int {
	switch {
	case s.IsTerminal():
		return spiel.TerminalPlayerID
	case s.rolling:
		return spiel.ChancePlayerID
	default:
		return s.mover
	}
}

func (s *State) IsChanceNode() bool {
	return s.rolling && !s.IsTerminal()
}

func (s *State) IsSimultaneousNode() bool {
	return false
}

func (s *State) IsTerminal() bool {
	return s.winner != noWinner
}

func (s *State) LegalActions(player int) []int {
	if s.IsTerminal() || s.rolling || player != s.mover {
		return nil
	}
	if s.turnTotal == 0 {
		// nothing banked yet, holding would waste the turn
		return []int{ActionRoll}
	}
	return []int{ActionRoll, ActionHold}
}

func (s *State) ChanceOutcomes() []spiel.ChanceOutcome {
	if !s.IsChanceNode() {
		return nil
	}
	outcomes := make([]spiel.ChanceOutcome, numFaces)
	for face := 0; face < numFaces; face++ {
		outcomes[face] = spiel.ChanceOutcome{Action: face, Prob: 1.0 / numFaces}
	}
	return outcomes
}

func (s *State) ApplyAction(action int) error {
	if s.IsTerminal() {
		return fmt.Errorf("pig: action %d on terminal state", action)
	}
	if s.rolling {
		return s.applyChance(action)
	}
	switch action {
	case ActionRoll:
		s.rolling = true
	case ActionHold:
		s.scores[s.mover] += s.turnTotal
		s.turnTotal = 0
		if s.scores[s.mover] >= s.game.goal {
			s.winner = s.mover
		}
		s.mover = 1 - s.mover
	default:
		return fmt.Errorf("pig: illegal action %d", action)
	}
	return nil
}

// applyChance resolves a die outcome, action is face-1.
func (s *State) applyChance(action int) error {
	if action < 0 || action >= numFaces {
		return fmt.Errorf("pig: illegal die outcome %d", action)
	}
	s.rolling = false
	face := action + 1
	if face == 1 {
		s.turnTotal = 0
		s.mover = 1 - s.mover
		return nil
	}
	s.turnTotal += face
	return nil
}

func (s *State) ApplyActions(actions []int) error {
	return fmt.Errorf("pig: not a simultaneous-move game")
}

func (s *State) ObservationTensor(player int) ([]float64, error) {
	if player < 0 || player >= numPlayers {
		return nil, fmt.Errorf("pig: no observation for player %d", player)
	}
	goal := float64(s.game.goal)
	obs := make([]float64, 4)
	obs[0] = float64(s.scores[player]) / goal
	obs[1] = float64(s.scores[1-player]) / goal
	obs[2] = float64(s.turnTotal) / goal
	if player == s.mover {
		obs[3] = 1
	}
	return obs, nil
}

func (s *State) Rewards() []float64 {
	switch s.winner {
	case 0:
		return []float64{1, -1}
	case 1:
		return []float64{-1, 1}
	default:
		return []float64{0, 0}
	}
}

func (s *State) Returns() []float64 {
	return s.Rewards()
}

func (s *State) String() string {
	if s.rolling {
		return fmt.Sprintf("scores %d:%d turn %d player %d rolling", s.scores[0], s.scores[1], s.turnTotal, s.mover)
	}
	return fmt.Sprintf("scores %d:%d turn %d player %d to move", s.scores[0], s.scores[1], s.turnTotal, s.mover)
}
