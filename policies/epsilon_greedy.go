package policies

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/aecgames/spielbridge/types"
)

// EpsilonGreedyQ is tabular Q-learning with epsilon-greedy action
// selection over the legal actions.
type EpsilonGreedyQ struct {
	qTable   *QTable
	alpha    float64
	discount float64
	epsilon  float64
	rand     *rand.Rand
}

var _ types.Policy = &EpsilonGreedyQ{}

func NewEpsilonGreedyQ(alpha, discount, epsilon float64) *EpsilonGreedyQ {
	return &EpsilonGreedyQ{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (e *EpsilonGreedyQ) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedyQ) NextAction(step int, agent string, obs []float64, mask []int8) (int, bool) {
	actions := types.LegalActions(mask)
	if len(actions) == 0 {
		return 0, false
	}
	if e.rand.Float64() < e.epsilon {
		return actions[e.rand.Intn(len(actions))], true
	}
	action, _ := e.qTable.MaxAmong(stateKey(agent, obs), actions, 0)
	return action, true
}

func (e *EpsilonGreedyQ) Update(step int, agent string, obs []float64, action int, reward float64, nextObs []float64) {
	key := stateKey(agent, obs)
	nextKey := stateKey(agent, nextObs)
	cur := e.qTable.Get(key, action, 0)
	next := (1-e.alpha)*cur + e.alpha*(reward+e.discount*e.qTable.Max(nextKey, 0))
	e.qTable.Set(key, action, next)
}

func (e *EpsilonGreedyQ) UpdateEpisode(_ int, _ *types.Trace) {}

// Record writes the learned Q table to a file.
func (e *EpsilonGreedyQ) Record(path string) error {
	return e.qTable.Record(path)
}
