package types

import (
	"os"
	"path"
	"strconv"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ReturnAnalyzer collects the given agent's return of every episode.
func ReturnAnalyzer(agent string) Analyzer {
	return func(run int, experiment string, traces []*Trace) DataSet {
		returns := make([]float64, 0, len(traces))
		for _, trace := range traces {
			returns = append(returns, trace.Returns[agent])
		}
		return returns
	}
}

// EpisodeLengthAnalyzer collects the number of agent turns per episode.
func EpisodeLengthAnalyzer() Analyzer {
	return func(run int, experiment string, traces []*Trace) DataSet {
		lengths := make([]float64, 0, len(traces))
		for _, trace := range traces {
			lengths = append(lengths, float64(trace.Len()))
		}
		return lengths
	}
}

// CoverageAnalyzer counts cumulative unique observation keys over
// episodes.
func CoverageAnalyzer() Analyzer {
	return func(run int, experiment string, traces []*Trace) DataSet {
		unique := make(map[string]bool)
		counts := make([]float64, 0, len(traces))
		for _, trace := range traces {
			for _, step := range trace.Steps {
				unique[step.ObsKey] = true
			}
			counts = append(counts, float64(len(unique)))
		}
		return counts
	}
}

// SeriesPlotter renders one line per experiment over episodes and logs
// the series means.
func SeriesPlotter(plotPath, title, yLabel string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, 0o755)
	}
	return func(run int, experiments []string, data []DataSet) {
		p := plot.New()
		p.Title.Text = title
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = yLabel
		for i := 0; i < len(experiments); i++ {
			series := data[i].([]float64)
			points := make(plotter.XYs, len(series))
			for j, v := range series {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(experiments[i], line)
			log.Info().
				Str("experiment", experiments[i]).
				Str("metric", title).
				Int("run", run).
				Float64("mean", stat.Mean(series, nil)).
				Msg("series summary")
		}
		out := path.Join(plotPath, strconv.Itoa(run)+"_"+title+".png")
		if err := p.Save(8*vg.Inch, 8*vg.Inch, out); err != nil {
			log.Error().Err(err).Str("path", out).Msg("failed to save plot")
		}
	}
}

// ReturnPlotter compares per-episode returns of one agent.
func ReturnPlotter(plotPath, agent string) Comparator {
	return SeriesPlotter(plotPath, "returns_"+agent, "Return")
}

// CoveragePlotter compares cumulative unique observations.
func CoveragePlotter(plotPath string) Comparator {
	return SeriesPlotter(plotPath, "coverage", "Observations covered")
}

// LengthPlotter compares episode lengths.
func LengthPlotter(plotPath string) Comparator {
	return SeriesPlotter(plotPath, "length", "Agent turns")
}
