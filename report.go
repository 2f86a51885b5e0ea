package qtranspile

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteReport renders the pass execution history as an HTML bar chart:
// gate count, depth and T-count after every pass.
func WriteReport(history []PassStat, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("write report: empty pass history")
	}

	names := make([]string, len(history))
	gates := make([]opts.BarData, len(history))
	depths := make([]opts.BarData, len(history))
	tcounts := make([]opts.BarData, len(history))
	for i, s := range history {
		names[i] = s.Name
		gates[i] = opts.BarData{Value: s.GatesAfter}
		depths[i] = opts.BarData{Value: s.DepthAfter}
		tcounts[i] = opts.BarData{Value: s.TCountAfter}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Transpilation pass history",
			Subtitle: "circuit size per pass",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("gates", gates).
		AddSeries("depth", depths).
		AddSeries("t-count", tcounts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
