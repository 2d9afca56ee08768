// Package report renders HTML histogram pages of pixel-value distributions.
// The point of the visualization: the original image has structure in its
// histogram, while every share is indistinguishable from uniform noise.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/shardpix/shardpix/pkg/pixmap"
	"github.com/shardpix/shardpix/pkg/shamir"
)

const maxBins = 256

// WritePage renders one histogram chart per input to a single HTML page.
// original may be nil when only shares are of interest.
func WritePage(w io.Writer, original *pixmap.Pixmap, shares []*shamir.Share) error {
	page := components.NewPage()
	page.PageTitle = "pixel value distributions"

	if original != nil {
		title := fmt.Sprintf("original image (%v, %v)", original.Mode, original.Shape)
		page.AddCharts(histogramChart(title, original.Values, original.Max()))
	}
	for _, s := range shares {
		title := fmt.Sprintf("share x=%d (prime %d, %v)", s.X, s.Prime, s.Shape)
		page.AddCharts(histogramChart(title, s.Values, s.Prime-1))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("report: rendering page: %w", err)
	}
	return nil
}

func histogramChart(title string, values []uint32, maxValue uint32) *charts.Bar {
	labels, counts := histogram(values, maxValue)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("n=%d, range [0, %d]", len(values), maxValue),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

// histogram buckets values over [0, maxValue] into at most maxBins bins.
func histogram(values []uint32, maxValue uint32) ([]string, []int) {
	span := uint64(maxValue) + 1
	bins := int(span)
	if bins > maxBins {
		bins = maxBins
	}
	if bins < 1 {
		bins = 1
	}

	counts := make([]int, bins)
	for _, v := range values {
		i := int(uint64(v) * uint64(bins) / span)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}

	labels := make([]string, bins)
	for i := range labels {
		lo := uint64(i) * span / uint64(bins)
		hi := uint64(i+1)*span/uint64(bins) - 1
		if lo == hi {
			labels[i] = fmt.Sprintf("%d", lo)
		} else {
			labels[i] = fmt.Sprintf("%d–%d", lo, hi)
		}
	}
	return labels, counts
}

func toBarItems(counts []int) []opts.BarData {
	items := make([]opts.BarData, len(counts))
	for i, c := range counts {
		items[i] = opts.BarData{Value: c}
	}
	return items
}
