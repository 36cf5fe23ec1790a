package aec

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/aecgames/spielbridge/spiel"
)

// ErrNoAgents is returned when stepping an environment whose agents
// have all been retired.
var ErrNoAgents = errors.New("aec: no live agents, reset required")

// GameEnv adapts a spiel.Game to the agent-cycling Env contract.
//
// The game's transition model is reshaped into the cycle: resolve
// chance nodes, await the current player's action (or collect one
// action per agent at a simultaneous node), apply and advance, detect
// terminal or truncated episodes and retire finished agents.
type GameEnv struct {
	game  spiel.Game
	state spiel.State
	rng   *rand.Rand

	possibleAgents []string
	agents         []string
	idToName       map[int]string
	nameToID       map[string]int

	selection  string
	gameLength int

	rewards        map[string]float64
	cumRewards     map[string]float64
	episodeReturns map[string]float64
	terminations   map[string]bool
	truncations    map[string]bool
	infos          map[string]Info
	observations   map[string][]float64

	// actions collected so far at a simultaneous node
	pendingActions map[string]int
}

var _ Env = &GameEnv{}

// NewGameEnv wraps a game. The environment is unusable until Reset.
func NewGameEnv(game spiel.Game) *GameEnv {
	n := game.NumPlayers()
	env := &GameEnv{
		game:           game,
		possibleAgents: make([]string, n),
		idToName:       make(map[int]string, n),
		nameToID:       make(map[string]int, n),
	}
	for id := 0; id < n; id++ {
		name := fmt.Sprintf("player_%d", id)
		env.possibleAgents[id] = name
		env.idToName[id] = name
		env.nameToID[name] = id
	}
	return env
}

func (env *GameEnv) ObservationSpace(agent string) (Space, error) {
	if _, ok := env.nameToID[agent]; !ok {
		return nil, fmt.Errorf("aec: unknown agent %q", agent)
	}
	shape, err := env.game.ObservationTensorShape()
	if err != nil {
		return nil, fmt.Errorf("aec: observation space of %s: %w", env.game.Name(), err)
	}
	return Box{Low: math.Inf(-1), High: math.Inf(1), Shape: shape}, nil
}

func (env *GameEnv) ActionSpace(agent string) (Space, error) {
	if _, ok := env.nameToID[agent]; !ok {
		return nil, fmt.Errorf("aec: unknown agent %q", agent)
	}
	return Discrete{N: env.game.NumDistinctActions()}, nil
}

func (env *GameEnv) PossibleAgents() []string {
	out := make([]string, len(env.possibleAgents))
	copy(out, env.possibleAgents)
	return out
}

func (env *GameEnv) Agents() []string {
	out := make([]string, len(env.agents))
	copy(out, env.agents)
	return out
}

func (env *GameEnv) AgentSelection() string {
	return env.selection
}

func (env *GameEnv) Rewards() map[string]float64 {
	out := make(map[string]float64, len(env.cumRewards))
	for agent, r := range env.cumRewards {
		out[agent] = r
	}
	return out
}

func (env *GameEnv) Returns() map[string]float64 {
	out := make(map[string]float64, len(env.episodeReturns))
	for agent, r := range env.episodeReturns {
		out[agent] = r
	}
	return out
}

func (env *GameEnv) Terminations() map[string]bool {
	out := make(map[string]bool, len(env.terminations))
	for agent, done := range env.terminations {
		out[agent] = done
	}
	return out
}

func (env *GameEnv) Truncations() map[string]bool {
	out := make(map[string]bool, len(env.truncations))
	for agent, done := range env.truncations {
		out[agent] = done
	}
	return out
}

func (env *GameEnv) Observe(agent string) ([]float64, error) {
	obs, ok := env.observations[agent]
	if !ok {
		return nil, fmt.Errorf("aec: no observation for agent %q", agent)
	}
	out := make([]float64, len(obs))
	copy(out, obs)
	return out, nil
}

func (env *GameEnv) Last() (obs []float64, reward float64, terminated bool, truncated bool, info Info) {
	if cached, ok := env.observations[env.selection]; ok {
		obs = make([]float64, len(cached))
		copy(obs, cached)
	}
	return obs, env.cumRewards[env.selection],
		env.terminations[env.selection], env.truncations[env.selection],
		env.infos[env.selection]
}

// Render returns the wrapped state's text rendering.
func (env *GameEnv) Render() string {
	if env.state == nil {
		return ""
	}
	return env.state.String()
}

func (env *GameEnv) Close() error {
	return nil
}

func (env *GameEnv) Reset(seed int64) error {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	env.rng = rand.New(rand.NewSource(uint64(seed)))

	env.agents = env.PossibleAgents()
	env.rewards = make(map[string]float64, len(env.agents))
	env.cumRewards = make(map[string]float64, len(env.agents))
	env.episodeReturns = make(map[string]float64, len(env.agents))
	env.terminations = make(map[string]bool, len(env.agents))
	env.truncations = make(map[string]bool, len(env.agents))
	env.infos = make(map[string]Info, len(env.agents))
	env.observations = make(map[string][]float64, len(env.agents))
	env.pendingActions = make(map[string]int)

	env.gameLength = 1
	env.state = env.game.NewInitialState()

	if err := env.resolveChance(); err != nil {
		return err
	}
	if err := env.updateObservations(); err != nil {
		return err
	}
	env.updateActionMasks()

	env.selection = env.selectionFromState()
	return nil
}

func (env *GameEnv) Step(action int) error {
	if len(env.agents) == 0 {
		return ErrNoAgents
	}
	// finished agents are drained one per call
	if env.endRoutine() {
		return nil
	}
	advanced, err := env.executeActionNode(action)
	if err != nil {
		return err
	}
	if !advanced {
		// still collecting simultaneous actions, nothing changed
		return nil
	}
	if err := env.resolveChance(); err != nil {
		return err
	}
	// chance can hand the move to a different player
	env.selection = env.selectionFromState()
	if err := env.updateObservations(); err != nil {
		return err
	}
	env.updateActionMasks()
	env.updateRewards()
	return nil
}

// resolveChance samples outcomes until the state is no longer a chance
// node. Chance is never surfaced to the caller.
func (env *GameEnv) resolveChance() error {
	for env.state.IsChanceNode() {
		outcomes := env.state.ChanceOutcomes()
		if len(outcomes) == 0 {
			return fmt.Errorf("aec: chance node of %s has no outcomes", env.game.Name())
		}
		weights := make([]float64, len(outcomes))
		for i, o := range outcomes {
			weights[i] = o.Prob
		}
		idx, ok := sampleuv.NewWeighted(weights, env.rng).Take()
		if !ok {
			return fmt.Errorf("aec: sampling chance outcome of %s", env.game.Name())
		}
		env.gameLength++
		if err := env.state.ApplyAction(outcomes[idx].Action); err != nil {
			return fmt.Errorf("aec: applying chance outcome: %w", err)
		}
	}
	return nil
}

// executeActionNode records or applies the selected agent's action.
// Reports whether the state advanced, it does not while a simultaneous
// node is still collecting actions.
func (env *GameEnv) executeActionNode(action int) (bool, error) {
	if env.state.IsSimultaneousNode() {
		env.pendingActions[env.selection] = action
		// the agent has acted on its pending reward
		env.cumRewards[env.selection] = 0

		for _, agent := range env.agents {
			if _, ok := env.pendingActions[agent]; !ok {
				env.selection = agent
				return false, nil
			}
		}

		joint := make([]int, 0, len(env.possibleAgents))
		for _, agent := range env.possibleAgents {
			if a, ok := env.pendingActions[agent]; ok {
				joint = append(joint, a)
			}
		}
		if err := env.state.ApplyActions(joint); err != nil {
			return false, fmt.Errorf("aec: applying joint action: %w", err)
		}
		env.gameLength++
		env.pendingActions = make(map[string]int)
		return true, nil
	}

	if err := env.state.ApplyAction(action); err != nil {
		return false, fmt.Errorf("aec: applying action %d for %s: %w", action, env.selection, err)
	}
	env.gameLength++
	return true, nil
}

func (env *GameEnv) selectionFromState() string {
	if player := env.state.CurrentPlayer(); player >= 0 {
		return env.idToName[player]
	}
	return env.agents[0]
}

func (env *GameEnv) updateObservations() error {
	for _, agent := range env.agents {
		obs, err := env.state.ObservationTensor(env.nameToID[agent])
		if err != nil {
			return fmt.Errorf("aec: observation of %s for %s: %w", env.game.Name(), agent, err)
		}
		env.observations[agent] = obs
	}
	return nil
}

func (env *GameEnv) updateActionMasks() {
	numActions := env.game.NumDistinctActions()
	for id := 0; id < env.game.NumPlayers(); id++ {
		mask := make([]int8, numActions)
		for _, action := range env.state.LegalActions(id) {
			mask[action] = 1
		}
		env.infos[env.idToName[id]] = Info{ActionMask: mask}
	}
}

func (env *GameEnv) updateRewards() {
	rewards := env.state.Rewards()
	for id, name := range env.possibleAgents {
		env.rewards[name] = rewards[id]
		env.cumRewards[name] = rewards[id]
		env.episodeReturns[name] += rewards[id]
	}
}

// endRoutine marks episode-wide termination and truncation, all agents
// of a game end together. Reports whether the selected agent was
// retired instead of acting.
func (env *GameEnv) endRoutine() bool {
	terminal := env.state.IsTerminal()
	for _, agent := range env.agents {
		env.terminations[agent] = terminal
	}

	truncated := env.gameLength > env.game.MaxGameLength()
	for _, agent := range env.agents {
		env.truncations[agent] = truncated
	}

	// a mover with no legal action means the simulator reached a dead
	// position without flagging it terminal
	if env.deadPosition() {
		for _, agent := range env.agents {
			env.terminations[agent] = true
		}
	}

	if env.terminations[env.selection] || env.truncations[env.selection] {
		env.removeAgent(env.selection)
		if len(env.agents) > 0 {
			env.selection = env.agents[0]
		}
		return true
	}
	return false
}

// deadPosition reports whether an agent that must act has an all-zero
// action mask. At a simultaneous node every live agent must act,
// otherwise only the selected one.
func (env *GameEnv) deadPosition() bool {
	movers := []string{env.selection}
	if env.state.IsSimultaneousNode() {
		movers = env.agents
	}
	for _, agent := range movers {
		if !env.maskHasAction(agent) {
			return true
		}
	}
	return false
}

func (env *GameEnv) maskHasAction(agent string) bool {
	for _, v := range env.infos[agent].ActionMask {
		if v == 1 {
			return true
		}
	}
	return false
}

func (env *GameEnv) removeAgent(agent string) {
	for i, a := range env.agents {
		if a == agent {
			env.agents = append(env.agents[:i], env.agents[i+1:]...)
			return
		}
	}
}
