package benchmarks

import (
	"github.com/spf13/cobra"

	"github.com/aecgames/spielbridge/aec"
	"github.com/aecgames/spielbridge/policies"
	"github.com/aecgames/spielbridge/spiel/pig"
	"github.com/aecgames/spielbridge/types"
)

func PigCommand() *cobra.Command {
	var goal int

	cmd := &cobra.Command{
		Use: "pig",
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

			byExperiment := make(map[string]types.Policy)
			for _, exp := range []struct {
				name   string
				policy types.Policy
			}{
				{"Random", types.NewRandomPolicy()},
				{"EpsilonGreedyQ", policies.NewEpsilonGreedyQ(0.4, 0.99, 0.05)},
				{"SoftMaxQ", policies.NewSoftMaxQ(0.4, 0.99)},
			} {
				game, err := pig.NewGame(goal)
				if err != nil {
					return err
				}
				byExperiment[exp.name] = exp.policy
				c.AddExperiment(types.NewExperiment(exp.name, exp.policy, aec.NewGameEnv(game)))
			}

			if err := c.Run(cmd.Context()); err != nil {
				return err
			}
			return saveQTables(byExperiment)
		},
	}
	cmd.Flags().IntVar(&goal, "goal", pig.DefaultGoal, "Score required to win")
	return cmd
}
