// Package aec exposes turn-based and simultaneous-move games through an
// agent-cycling environment interface: exactly one agent is selected at
// a time and the caller acts for it before the environment advances.
package aec

// Space describes the set an observation or action is drawn from.
type Space interface {
	// FlatDim is the flattened size of the space.
	FlatDim() int
}

// Discrete is the action space {0, ..., N-1}.
type Discrete struct {
	N int
}

var _ Space = Discrete{}

func (d Discrete) FlatDim() int {
	return d.N
}

func (d Discrete) Contains(action int) bool {
	return action >= 0 && action < d.N
}

// Box is a real-valued space with uniform bounds over the given shape.
type Box struct {
	Low   float64
	High  float64
	Shape []int
}

var _ Space = Box{}

func (b Box) FlatDim() int {
	dim := 1
	for _, d := range b.Shape {
		dim *= d
	}
	return dim
}

// Info carries per-agent side information alongside observations.
type Info struct {
	// ActionMask has one entry per distinct action, 1 where legal.
	ActionMask []int8
}

// Env is the agent-cycling environment contract.
type Env interface {
	// Reset starts a new episode. A negative seed draws one from entropy.
	Reset(seed int64) error
	// Step applies an action for the selected agent and advances the
	// agent selection. Stepping a finished agent retires it.
	Step(action int) error
	// Observe returns the current observation for an agent.
	Observe(agent string) ([]float64, error)
	// Last describes the selected agent: observation, cumulative reward
	// since it last acted, done flags and info.
	Last() (obs []float64, reward float64, terminated bool, truncated bool, info Info)
	ObservationSpace(agent string) (Space, error)
	ActionSpace(agent string) (Space, error)
	// PossibleAgents is the fixed roster, Agents the ones still alive.
	PossibleAgents() []string
	Agents() []string
	AgentSelection() string
	// Rewards is a copy of the per-agent cumulative rewards.
	Rewards() map[string]float64
	// Returns is a copy of the per-agent rewards accumulated over the
	// whole episode.
	Returns() map[string]float64
	Terminations() map[string]bool
	Truncations() map[string]bool
	Close() error
}
