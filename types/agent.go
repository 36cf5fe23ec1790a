package types

import (
	"context"
	"fmt"

	"github.com/aecgames/spielbridge/aec"
)

type AgentConfig struct {
	Episodes int
	Horizon  int
	// Seed of the first episode; episode i resets with Seed+i. A
	// negative seed leaves every episode unseeded.
	Seed        int64
	Policy      Policy
	Environment aec.Env
}

// Agent runs a policy against an agent-cycling environment, acting for
// whichever agent the environment selects.
type Agent struct {
	config      *AgentConfig
	policy      Policy
	environment aec.Env
}

func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// Run executes the configured number of episodes and returns their
// traces. Stops early when the context is cancelled.
func (a *Agent) Run(ctx context.Context) ([]*Trace, error) {
	traces := make([]*Trace, 0, a.config.Episodes)
	for episode := 0; episode < a.config.Episodes; episode++ {
		select {
		case <-ctx.Done():
			return traces, ctx.Err()
		default:
		}
		seed := a.config.Seed
		if seed >= 0 {
			seed += int64(episode)
		}
		trace, err := a.runEpisode(episode, seed)
		if err != nil {
			return traces, fmt.Errorf("episode %d: %w", episode, err)
		}
		traces = append(traces, trace)
	}
	return traces, nil
}

// pendingUpdate is an agent turn whose reward has not settled yet.
type pendingUpdate struct {
	step   int
	index  int
	obs    []float64
	action int
}

func (a *Agent) runEpisode(episode int, seed int64) (*Trace, error) {
	env := a.environment
	if err := env.Reset(seed); err != nil {
		return nil, err
	}
	trace := NewTrace(episode)

	// the reward for an action only settles once the state advances,
	// which at a simultaneous node happens after the other agents
	// submit theirs. Each agent's policy update and trace reward are
	// therefore deferred to the start of its next turn, when Last
	// reports the reward accumulated since it acted.
	pending := make(map[string]pendingUpdate)
	settle := func(agent string, reward float64, nextObs []float64) {
		p, ok := pending[agent]
		if !ok {
			return
		}
		a.policy.Update(p.step, agent, p.obs, p.action, reward, nextObs)
		trace.Steps[p.index].Reward = reward
		delete(pending, agent)
	}

	for step := 0; step < a.config.Horizon; step++ {
		if len(env.Agents()) == 0 {
			break
		}
		agent := env.AgentSelection()
		obs, reward, terminated, truncated, info := env.Last()
		settle(agent, reward, obs)

		// finished or stuck agents are stepped with a dummy action so
		// the environment can retire them
		if terminated || truncated || len(LegalActions(info.ActionMask)) == 0 {
			if err := env.Step(0); err != nil {
				return trace, err
			}
			continue
		}

		action, ok := a.policy.NextAction(step, agent, obs, info.ActionMask)
		if !ok {
			break
		}
		if err := env.Step(action); err != nil {
			return trace, err
		}

		trace.Append(Step{
			Agent:      agent,
			Action:     action,
			Terminated: env.Terminations()[agent],
			Truncated:  env.Truncations()[agent],
			ObsKey:     ObsKey(obs),
		})
		pending[agent] = pendingUpdate{step: step, index: trace.Len() - 1, obs: obs, action: action}
	}

	// the horizon can cut an episode short with updates outstanding
	for _, agent := range env.PossibleAgents() {
		p, ok := pending[agent]
		if !ok {
			continue
		}
		nextObs, err := env.Observe(agent)
		if err != nil {
			nextObs = p.obs
		}
		settle(agent, env.Rewards()[agent], nextObs)
	}

	trace.Returns = env.Returns()
	a.policy.UpdateEpisode(episode, trace)
	return trace, nil
}
