package benchmarks

import (
	"github.com/spf13/cobra"

	"github.com/aecgames/spielbridge/aec"
	"github.com/aecgames/spielbridge/policies"
	"github.com/aecgames/spielbridge/spiel/roshambo"
	"github.com/aecgames/spielbridge/types"
)

func RoshamboCommand() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use: "roshambo",
		RunE: func(cmd *cobra.Command, args []string) error {
			newEnv := func() (*aec.GameEnv, error) {
				game, err := roshambo.NewGame(rounds)
				if err != nil {
					return nil, err
				}
				return aec.NewGameEnv(game), nil
			}

			c := types.NewComparison(&types.ComparisonConfig{
				Runs:       runs,
				Episodes:   episodes,
				Horizon:    horizon,
				Seed:       seed,
				RecordPath: saveDir,
				Sinks:      traceSinks(),
			})
			c.AddAnalysis("returns", types.ReturnAnalyzer("player_0"), types.ReturnPlotter(plotDir(), "player_0"))
			c.AddAnalysis("length", types.EpisodeLengthAnalyzer(), types.LengthPlotter(plotDir()))

			byExperiment := make(map[string]types.Policy)
			for _, exp := range []struct {
				name   string
				policy types.Policy
			}{
				{"Random", types.NewRandomPolicy()},
				{"EpsilonGreedyQ", policies.NewEpsilonGreedyQ(0.3, 0.9, 0.1)},
				{"SoftMaxQ", policies.NewSoftMaxQ(0.3, 0.9)},
			} {
				env, err := newEnv()
				if err != nil {
					return err
				}
				byExperiment[exp.name] = exp.policy
				c.AddExperiment(types.NewExperiment(exp.name, exp.policy, env))
			}

			if err := c.Run(cmd.Context()); err != nil {
				return err
			}
			return saveQTables(byExperiment)
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", roshambo.DefaultRounds, "Rounds per episode")
	return cmd
}
