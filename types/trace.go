package types

import (
	"fmt"
	"strings"
)

// Step is one agent turn of an episode.
type Step struct {
	Agent      string  `json:"agent"`
	Action     int     `json:"action"`
	Reward     float64 `json:"reward"`
	Terminated bool    `json:"terminated"`
	Truncated  bool    `json:"truncated"`
	// ObsKey is a quantized key of the observation the agent acted on,
	// used by Q-tables and coverage analysis.
	ObsKey string `json:"obs_key"`
}

// Trace of an episode as the sequence of agent turns.
type Trace struct {
	Episode int                `json:"episode"`
	Steps   []Step             `json:"steps"`
	Returns map[string]float64 `json:"returns"`
}

func NewTrace(episode int) *Trace {
	return &Trace{
		Episode: episode,
		Steps:   make([]Step, 0),
		Returns: make(map[string]float64),
	}
}

func (t *Trace) Append(step Step) {
	t.Steps = append(t.Steps, step)
}

func (t *Trace) Len() int {
	return len(t.Steps)
}

func (t *Trace) Get(i int) (Step, bool) {
	if i < 0 || i >= len(t.Steps) {
		return Step{}, false
	}
	return t.Steps[i], true
}

func (t *Trace) Last() (Step, bool) {
	if len(t.Steps) == 0 {
		return Step{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// ObsKey quantizes an observation vector to a stable string key.
func ObsKey(obs []float64) string {
	var b strings.Builder
	for i, v := range obs {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%.3f", v)
	}
	return b.String()
}
