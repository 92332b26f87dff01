// Package charts renders interactive HTML reports of a player's matchup
// landscape.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/ml"
	"github.com/rbatllet/royale-advisor/internal/profile"
)

const (
	chartWidth  = "900px"
	chartHeight = "500px"
)

// PlayerReport holds everything the report renders.
type PlayerReport struct {
	PlayerName string
	Style      *profile.StyleProfile
	// Distribution is the opponent-archetype distribution; may be empty.
	Distribution ml.Distribution
	// Matchups maps opponent archetype to modeled win probability for the
	// player's favored deck; empty when no model is available.
	Matchups map[archetype.Archetype]float64
}

// Render writes the report as a self-contained HTML page.
func Render(w io.Writer, report *PlayerReport) error {
	page := components.NewPage()
	page.AddCharts(opponentBar(report))
	if len(report.Matchups) > 0 {
		page.AddCharts(matchupBar(report))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// opponentBar charts how often each archetype shows up in the player's
// recent opposition.
func opponentBar(report *PlayerReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s: opponents faced", report.PlayerName),
			Subtitle: fmt.Sprintf("%d recent battles", report.Style.Samples),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(archetype.All))
	values := make([]opts.BarData, 0, len(archetype.All))
	for _, arch := range archetype.All {
		labels = append(labels, string(arch))
		values = append(values, opts.BarData{Value: report.Distribution[arch]})
	}
	bar.SetXAxis(labels).AddSeries("share", values)
	return bar
}

// matchupBar charts the modeled win probability per opponent archetype.
func matchupBar(report *PlayerReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Modeled win probability by matchup",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(archetype.All))
	values := make([]opts.BarData, 0, len(archetype.All))
	for _, arch := range archetype.All {
		if p, ok := report.Matchups[arch]; ok {
			labels = append(labels, string(arch))
			values = append(values, opts.BarData{Value: p})
		}
	}
	bar.SetXAxis(labels).AddSeries("win probability", values)
	return bar
}
