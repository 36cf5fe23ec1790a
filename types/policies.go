package types

import (
	"time"

	"golang.org/x/exp/rand"
)

// Policy decides actions for agents of an environment. A single policy
// instance serves every agent of an episode (self-play), the agent name
// is part of each call.
type Policy interface {
	// NextAction picks an action for the agent given its observation
	// and action mask. Returns false if no action is available.
	NextAction(step int, agent string, obs []float64, mask []int8) (int, bool)
	// Update feeds back the transition the agent just experienced.
	Update(step int, agent string, obs []float64, action int, reward float64, nextObs []float64)
	// UpdateEpisode is called once per finished episode.
	UpdateEpisode(episode int, trace *Trace)
	Reset()
}

// LegalActions lists the action ids a mask permits.
func LegalActions(mask []int8) []int {
	actions := make([]int, 0, len(mask))
	for a, v := range mask {
		if v == 1 {
			actions = append(actions, a)
		}
	}
	return actions
}

// RandomPolicy picks uniformly among legal actions.
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// NewSeededRandomPolicy is the reproducible variant.
func NewSeededRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rand: rand.New(rand.NewSource(seed))}
}

func (r *RandomPolicy) Reset() {}

func (r *RandomPolicy) NextAction(step int, agent string, obs []float64, mask []int8) (int, bool) {
	actions := LegalActions(mask)
	if len(actions) == 0 {
		return 0, false
	}
	return actions[r.rand.Intn(len(actions))], true
}

func (r *RandomPolicy) Update(_ int, _ string, _ []float64, _ int, _ float64, _ []float64) {}

func (r *RandomPolicy) UpdateEpisode(_ int, _ *Trace) {}
