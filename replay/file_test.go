package replay

import (
	"bufio"
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aecgames/spielbridge/types"
)

func TestFileSink(t *testing.T) {
	file := path.Join(t.TempDir(), "traces", "run_0.jsonl")
	sink, err := NewFileSink(file)
	require.NoError(t, err)
	defer sink.Close()

	for episode := 0; episode < 3; episode++ {
		trace := types.NewTrace(episode)
		trace.Append(types.Step{Agent: "player_0", Action: episode, Reward: 1})
		trace.Returns["player_0"] = 1
		require.NoError(t, sink.Append(trace))
	}

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	episodes := 0
	for scanner.Scan() {
		trace := &types.Trace{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), trace))
		require.Equal(t, episodes, trace.Episode)
		require.Equal(t, 1, trace.Len())
		episodes++
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, 3, episodes)
}
