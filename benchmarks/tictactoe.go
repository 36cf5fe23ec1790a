package benchmarks

import (
	"github.com/spf13/cobra"

	"github.com/aecgames/spielbridge/aec"
	"github.com/aecgames/spielbridge/policies"
	"github.com/aecgames/spielbridge/spiel/tictactoe"
	"github.com/aecgames/spielbridge/types"
)

func TicTacToeCommand() *cobra.Command {
	return &cobra.Command{
		Use: "tictactoe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := types.NewComparison(&types.ComparisonConfig{
				Runs:       runs,
				Episodes:   episodes,
				Horizon:    horizon,
				Seed:       seed,
				RecordPath: saveDir,
				Sinks:      traceSinks(),
			})
			c.AddAnalysis("coverage", types.CoverageAnalyzer(), types.CoveragePlotter(plotDir()))
			c.AddAnalysis("returns", types.ReturnAnalyzer("player_0"), types.ReturnPlotter(plotDir(), "player_0"))

			byExperiment := map[string]types.Policy{
				"Random":         types.NewRandomPolicy(),
				"EpsilonGreedyQ": policies.NewEpsilonGreedyQ(0.3, 0.95, 0.1),
				"SoftMaxQ":       policies.NewSoftMaxQ(0.3, 0.95),
			}
			for _, name := range []string{"Random", "EpsilonGreedyQ", "SoftMaxQ"} {
				c.AddExperiment(types.NewExperiment(
					name, byExperiment[name], aec.NewGameEnv(tictactoe.NewGame())))
			}

			if err := c.Run(cmd.Context()); err != nil {
				return err
			}
			return saveQTables(byExperiment)
		},
	}
}
