package types

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aecgames/spielbridge/aec"
	"github.com/aecgames/spielbridge/util"
)

// TraceRecorder persists episode traces. Implemented by the replay
// sinks.
type TraceRecorder interface {
	Append(trace *Trace) error
	Close() error
}

// SinkFactory opens a recorder for one experiment run. Returning a nil
// recorder disables recording for that run.
type SinkFactory func(experiment string, run int) (TraceRecorder, error)

// DataSet is whatever an analyzer distills out of a run's traces.
type DataSet interface{}

// Analyzer reduces the traces of one run of one experiment.
type Analyzer func(run int, experiment string, traces []*Trace) DataSet

// Comparator consumes the datasets of all experiments for one run.
type Comparator func(run int, experiments []string, data []DataSet)

// Experiment pairs a named policy with an environment.
type Experiment struct {
	Name        string
	policy      Policy
	environment aec.Env
}

func NewExperiment(name string, policy Policy, environment aec.Env) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
	}
}

// Comparison runs several experiments under identical settings and
// feeds their traces through shared analyses.
type ComparisonConfig struct {
	Runs       int
	Episodes   int
	Horizon    int
	Seed       int64
	RecordPath string
	// Sinks receives every trace when set.
	Sinks SinkFactory
}

type analysis struct {
	name       string
	analyzer   Analyzer
	comparator Comparator
}

type Comparison struct {
	config      *ComparisonConfig
	experiments []*Experiment
	analyses    []analysis
}

func NewComparison(config *ComparisonConfig) *Comparison {
	if config.RecordPath != "" {
		os.MkdirAll(config.RecordPath, 0o755)
	}
	return &Comparison{
		config:      config,
		experiments: make([]*Experiment, 0),
		analyses:    make([]analysis, 0),
	}
}

// AddExperiment registers a policy/environment pair. The environment
// is owned by the comparison for the duration of its runs.
func (c *Comparison) AddExperiment(e *Experiment) {
	c.experiments = append(c.experiments, e)
}

func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyses = append(c.analyses, analysis{name: name, analyzer: analyzer, comparator: comparator})
}

// Run executes every experiment for every run and applies the analyses
// per run.
func (c *Comparison) Run(ctx context.Context) error {
	for run := 0; run < c.config.Runs; run++ {
		names := make([]string, 0, len(c.experiments))
		datasets := make([][]DataSet, len(c.analyses))
		report := make([]string, 0, len(c.experiments))

		for _, e := range c.experiments {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			e.policy.Reset()
			agent := NewAgent(&AgentConfig{
				Episodes:    c.config.Episodes,
				Horizon:     c.config.Horizon,
				Seed:        c.config.Seed,
				Policy:      e.policy,
				Environment: e.environment,
			})
			start := time.Now()
			traces, err := agent.Run(ctx)
			if err != nil {
				return fmt.Errorf("experiment %s run %d: %w", e.Name, run, err)
			}
			log.Info().
				Str("experiment", e.Name).
				Int("run", run).
				Int("episodes", len(traces)).
				Dur("took", time.Since(start)).
				Msg("experiment finished")

			if err := c.record(e.Name, run, traces); err != nil {
				return err
			}
			report = append(report, fmt.Sprintf("%s: %d episodes, mean returns %s",
				e.Name, len(traces), summarizeReturns(traces)))

			names = append(names, e.Name)
			for i, an := range c.analyses {
				datasets[i] = append(datasets[i], an.analyzer(run, e.Name, traces))
			}
		}

		for i, an := range c.analyses {
			an.comparator(run, names, datasets[i])
		}

		if c.config.RecordPath != "" {
			reportPath := path.Join(c.config.RecordPath, fmt.Sprintf("run_%d_report.txt", run))
			if err := util.WriteToFile(reportPath, report...); err != nil {
				return err
			}
		}
	}
	return nil
}

// summarizeReturns formats the per-agent mean episode returns.
func summarizeReturns(traces []*Trace) string {
	if len(traces) == 0 {
		return "none"
	}
	totals := make(map[string]float64)
	for _, trace := range traces {
		for agent, r := range trace.Returns {
			totals[agent] += r
		}
	}
	agents := make([]string, 0, len(totals))
	for agent := range totals {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	parts := make([]string, 0, len(agents))
	for _, agent := range agents {
		parts = append(parts, fmt.Sprintf("%s %.3f", agent, totals[agent]/float64(len(traces))))
	}
	return strings.Join(parts, " ")
}

func (c *Comparison) record(name string, run int, traces []*Trace) error {
	if c.config.Sinks == nil {
		return nil
	}
	sink, err := c.config.Sinks(name, run)
	if err != nil {
		return fmt.Errorf("opening sink for %s run %d: %w", name, run, err)
	}
	if sink == nil {
		return nil
	}
	defer sink.Close()
	for _, trace := range traces {
		if err := sink.Append(trace); err != nil {
			return fmt.Errorf("recording trace for %s run %d: %w", name, run, err)
		}
	}
	return nil
}
