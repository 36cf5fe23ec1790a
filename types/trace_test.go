package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	trace := NewTrace(3)
	require.Equal(t, 0, trace.Len())

	_, ok := trace.Last()
	require.False(t, ok)

	trace.Append(Step{Agent: "player_0", Action: 4, Reward: 0})
	trace.Append(Step{Agent: "player_1", Action: 2, Reward: -1, Terminated: true})
	require.Equal(t, 2, trace.Len())

	step, ok := trace.Get(0)
	require.True(t, ok)
	require.Equal(t, "player_0", step.Agent)

	last, ok := trace.Last()
	require.True(t, ok)
	require.True(t, last.Terminated)

	_, ok = trace.Get(2)
	require.False(t, ok)
}

func TestTraceRoundTrip(t *testing.T) {
	trace := NewTrace(0)
	trace.Append(Step{Agent: "player_0", Action: 1, Reward: 0.5, ObsKey: "0.000,1.000"})
	trace.Returns["player_0"] = 0.5

	bs, err := json.Marshal(trace)
	require.NoError(t, err)

	decoded := &Trace{}
	require.NoError(t, json.Unmarshal(bs, decoded))
	require.Equal(t, trace, decoded)
}

func TestObsKey(t *testing.T) {
	require.Equal(t, "", ObsKey(nil))
	require.Equal(t, "0.000,1.000,0.500", ObsKey([]float64{0, 1, 0.5}))
	require.Equal(t, ObsKey([]float64{0.12345}), ObsKey([]float64{0.12349}), "quantized")
}

func TestLegalActions(t *testing.T) {
	require.Empty(t, LegalActions([]int8{0, 0, 0}))
	require.Equal(t, []int{0, 2}, LegalActions([]int8{1, 0, 1}))
}
