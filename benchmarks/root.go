package benchmarks

import (
	"fmt"
	"os"
	"path"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aecgames/spielbridge/explorer"
	"github.com/aecgames/spielbridge/replay"
	"github.com/aecgames/spielbridge/types"
)

var (
	episodes      int
	horizon       int
	runs          int
	saveDir       string
	seed          int64
	redisAddr     string
	config        string
	recordQTables bool
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use: "spielbridge",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			if config == "" {
				return nil
			}
			return applyRunConfig(config)
		},
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 5000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Maximum agent turns per episode")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().Int64Var(&seed, "seed", -1, "Base episode seed, negative for entropy")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis", "", "Push traces to the redis instance at this address")
	rootCommand.PersistentFlags().StringVarP(&config, "config", "c", "", "YAML file overriding the run settings")
	rootCommand.PersistentFlags().BoolVar(&recordQTables, "record-qtables", false, "Dump learned Q tables as JSON under the save folder")
	// adding the subcommands here
	rootCommand.AddCommand(TicTacToeCommand())
	rootCommand.AddCommand(RoshamboCommand())
	rootCommand.AddCommand(PigCommand())
	rootCommand.AddCommand(explorer.ExploreCommand())
	return rootCommand
}

// traceSinks routes traces to redis when configured, to JSONL files
// under the save folder otherwise.
func traceSinks() types.SinkFactory {
	return func(experiment string, run int) (types.TraceRecorder, error) {
		if redisAddr != "" {
			return replay.NewRedisSink(redisAddr, fmt.Sprintf("traces:%s:%d", experiment, run), 0)
		}
		return replay.NewFileSink(path.Join(saveDir, "traces", fmt.Sprintf("%s_%d.jsonl", experiment, run)))
	}
}

func plotDir() string {
	return path.Join(saveDir, "plots")
}

// saveQTables dumps the tables of the policies that learned one, named
// after their experiment.
func saveQTables(byExperiment map[string]types.Policy) error {
	if !recordQTables {
		return nil
	}
	dir := path.Join(saveDir, "qtables")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for name, p := range byExperiment {
		recorder, ok := p.(interface{ Record(string) error })
		if !ok {
			continue
		}
		if err := recorder.Record(path.Join(dir, name+".json")); err != nil {
			return fmt.Errorf("recording qtable of %s: %w", name, err)
		}
	}
	return nil
}
