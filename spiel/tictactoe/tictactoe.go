package tictactoe

import (
	"fmt"
	"strings"

	"github.com/aecgames/spielbridge/spiel"
)

const (
	numCells   = 9
	numPlayers = 2
	empty      = -1
)

func init() {
	spiel.Register("tictactoe", func(params map[string]any) (spiel.Game, error) {
		return NewGame(), nil
	})
}

type Game struct{}

var _ spiel.Game = &Game{}

func NewGame() *Game {
	return &Game{}
}

func (g *Game) Name() string {
	return "tictactoe"
}

func (g *Game) NumPlayers() int {
	return numPlayers
}

func (g *Game) NumDistinctActions() int {
	return numCells
}

// Three planes: empty cells, player 0 marks, player 1 marks.
func (g *Game) ObservationTensorShape() ([]int, error) {
	return []int{3, 3, 3}, nil
}

func (g *Game) MaxGameLength() int {
	return numCells
}

func (g *Game) NewInitialState() spiel.State {
	s := &State{mover: 0, winner: empty}
	for i := range s.board {
		s.board[i] = empty
	}
	return s
}

type State struct {
	board  [numCells]int
	mover  int
	moves  int
	winner int
}

var _ spiel.State = &State{}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (s *State) CurrentPlayer() int {
	if s.IsTerminal() {
		return spiel.TerminalPlayerID
	}
	return s.mover
}

func (s *State) IsChanceNode() bool {
	return false
}

func (s *State) IsSimultaneousNode() bool {
	return false
}

func (s *State) IsTerminal() bool {
	return s.winner != empty || s.moves == numCells
}

func (s *State) LegalActions(player int) []int {
	if s.IsTerminal() || player != s.mover {
		return nil
	}
	actions := make([]int, 0, numCells-s.moves)
	for cell, mark := range s.board {
		if mark == empty {
			actions = append(actions, cell)
		}
	}
	return actions
}

func (s *State) ChanceOutcomes() []spiel.ChanceOutcome {
	return nil
}

func (s *State) ApplyAction(action int) error {
	if s.IsTerminal() {
		return fmt.Errorf("tictactoe: action %d on terminal state", action)
	}
	if action < 0 || action >= numCells || s.board[action] != empty {
		return fmt.Errorf("tictactoe: illegal action %d", action)
	}
	s.board[action] = s.mover
	s.moves++
	for _, line := range lines {
		if s.board[line[0]] == s.mover && s.board[line[1]] == s.mover && s.board[line[2]] == s.mover {
			s.winner = s.mover
			break
		}
	}
	s.mover = 1 - s.mover
	return nil
}

func (s *State) ApplyActions(actions []int) error {
	return fmt.Errorf("tictactoe: not a simultaneous-move game")
}

func (s *State) ObservationTensor(player int) ([]float64, error) {
	obs := make([]float64, 3*numCells)
	for cell, mark := range s.board {
		switch mark {
		case empty:
			obs[cell] = 1
		case 0:
			obs[numCells+cell] = 1
		case 1:
			obs[2*numCells+cell] = 1
		}
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
	marks := map[int]string{empty: ".", 0: "x", 1: "o"}
	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			b.WriteString(marks[s.board[3*row+col]])
		}
		b.WriteString("\n")
	}
	return b.String()
}
