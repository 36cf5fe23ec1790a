package policies

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/aecgames/spielbridge/types"
)

// SoftMaxQ is tabular Q-learning that samples actions with probability
// proportional to the exponentiated action values of the legal actions.
type SoftMaxQ struct {
	qTable   *QTable
	alpha    float64
	discount float64
	rand     *rand.Rand
}

var _ types.Policy = &SoftMaxQ{}

func NewSoftMaxQ(alpha, discount float64) *SoftMaxQ {
	return &SoftMaxQ{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (s *SoftMaxQ) Reset() {
	s.qTable = NewQTable()
}

func (s *SoftMaxQ) NextAction(step int, agent string, obs []float64, mask []int8) (int, bool) {
	actions := types.LegalActions(mask)
	if len(actions) == 0 {
		return 0, false
	}
	key := stateKey(agent, obs)

	sum := float64(0)
	vals := make([]float64, len(actions))
	for i, action := range actions {
		exp := math.Exp(s.qTable.Get(key, action, 0))
		vals[i] = exp
		sum += exp
	}
	weights := make([]float64, len(actions))
	for i, v := range vals {
		weights[i] = v / sum
	}

	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return 0, false
	}
	return actions[i], true
}

func (s *SoftMaxQ) Update(step int, agent string, obs []float64, action int, reward float64, nextObs []float64) {
	key := stateKey(agent, obs)
	nextKey := stateKey(agent, nextObs)
	cur := s.qTable.Get(key, action, 0)
	next := (1-s.alpha)*cur + s.alpha*(reward+s.discount*s.qTable.Max(nextKey, 0))
	s.qTable.Set(key, action, next)
}

func (s *SoftMaxQ) UpdateEpisode(_ int, _ *types.Trace) {}

// Record writes the learned Q table to a file.
func (s *SoftMaxQ) Record(path string) error {
	return s.qTable.Record(path)
}
