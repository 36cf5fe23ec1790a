package spiel

import "errors"

// Pseudo player ids returned by State.CurrentPlayer when no single
// player is to move.
const (
	ChancePlayerID       = -1
	SimultaneousPlayerID = -2
	TerminalPlayerID     = -4
)

// ErrUnsupported is returned by games that do not implement an optional
// part of the contract, such as observation tensors.
var ErrUnsupported = errors.New("unsupported by game")

// ChanceOutcome is one stochastic transition out of a chance node.
// Probabilities of all outcomes at a node sum to 1.
type ChanceOutcome struct {
	Action int
	Prob   float64
}

// Game is a description of a game and a factory for its initial states.
type Game interface {
	Name() string
	NumPlayers() int
	// Number of distinct player actions across all states. Action ids
	// are in [0, NumDistinctActions).
	NumDistinctActions() int
	// Shape of the per-player observation tensor, or ErrUnsupported.
	ObservationTensorShape() ([]int, error)
	// Upper bound on the number of state transitions in any playthrough,
	// chance transitions included.
	MaxGameLength() int
	NewInitialState() State
}

// State of a game in progress. Implementations are mutable: ApplyAction
// and ApplyActions advance the receiver.
type State interface {
	// The player to move, or one of the pseudo ids above.
	CurrentPlayer() int
	IsChanceNode() bool
	IsSimultaneousNode() bool
	IsTerminal() bool
	// Legal action ids for the given player. Empty for players who do
	// not act at this state and for terminal states.
	LegalActions(player int) []int
	// Outcomes of a chance node. Empty unless IsChanceNode.
	ChanceOutcomes() []ChanceOutcome
	// Apply a single action: the mover's at a decision node, a sampled
	// outcome's at a chance node.
	ApplyAction(action int) error
	// Apply one action per player, in player order, at a simultaneous node.
	ApplyActions(actions []int) error
	// Observation of the state from the given player's perspective,
	// flattened to the game's tensor shape, or ErrUnsupported.
	ObservationTensor(player int) ([]float64, error)
	// Rewards gained by each player at the most recent transition.
	Rewards() []float64
	// Total returns per player. Defined at terminal states.
	Returns() []float64
	String() string
}
