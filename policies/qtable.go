// Package policies provides tabular policies over quantized
// observations for agent-cycling environments.
package policies

import (
	"encoding/json"
	"os"

	"github.com/aecgames/spielbridge/types"
)

// QTable maps observation keys to per-action values. Keys combine the
// agent name and the quantized observation so one table can serve
// self-play across agents.
type QTable struct {
	Values map[string]map[int]float64 `json:"values"`
}

func NewQTable() *QTable {
	return &QTable{
		Values: make(map[string]map[int]float64),
	}
}

func stateKey(agent string, obs []float64) string {
	return agent + "|" + types.ObsKey(obs)
}

func (q *QTable) Get(key string, action int, def float64) float64 {
	if actions, ok := q.Values[key]; ok {
		if v, ok := actions[action]; ok {
			return v
		}
	}
	return def
}

func (q *QTable) Set(key string, action int, value float64) {
	if _, ok := q.Values[key]; !ok {
		q.Values[key] = make(map[int]float64)
	}
	q.Values[key][action] = value
}

// Max returns the best known action value for a key, or def when the
// key is unseen.
func (q *QTable) Max(key string, def float64) float64 {
	actions, ok := q.Values[key]
	if !ok || len(actions) == 0 {
		return def
	}
	first := true
	best := def
	for _, v := range actions {
		if first || v > best {
			best = v
			first = false
		}
	}
	return best
}

// MaxAmong returns the highest-valued action among the given ones,
// treating unseen actions as def.
func (q *QTable) MaxAmong(key string, actions []int, def float64) (int, float64) {
	if len(actions) == 0 {
		return -1, def
	}
	best := actions[0]
	bestVal := q.Get(key, actions[0], def)
	for _, a := range actions[1:] {
		if v := q.Get(key, a, def); v > bestVal {
			best, bestVal = a, v
		}
	}
	return best, bestVal
}

// Record writes the table as JSON, for offline inspection.
func (q *QTable) Record(path string) error {
	bs, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0o644)
}
