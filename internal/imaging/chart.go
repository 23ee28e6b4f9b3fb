package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// Chart dimensions in pixels.
const (
	ChartWidth  = 1024
	ChartHeight = 512
)

// RenderHistogramChart draws counts as a curve over the intensity axis and,
// when threshold is in range, a vertical marker at threshold. The chart is
// written to w as PNG.
func RenderHistogramChart(counts []int64, threshold int, title string, w io.Writer) error {
	if len(counts) == 0 {
		return fmt.Errorf("histogram is empty")
	}

	xvalues := make([]float64, len(counts))
	yvalues := make([]float64, len(counts))
	var peak float64
	for i, c := range counts {
		xvalues[i] = float64(i)
		yvalues[i] = float64(c)
		if yvalues[i] > peak {
			peak = yvalues[i]
		}
	}
	if peak == 0 {
		// Keep the y range non-empty.
		peak = 1
	}

	graph := chart.Chart{
		Title:  title,
		Width:  ChartWidth,
		Height: ChartHeight,
		XAxis: chart.XAxis{
			Name: "Intensity",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(len(counts) - 1),
			},
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: peak,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "histogram",
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorAlternateBlue,
				},
				XValues: xvalues,
				YValues: yvalues,
			},
		},
	}

	if threshold >= 0 && threshold < len(counts) {
		t := float64(threshold)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: "threshold",
			Style: chart.Style{
				StrokeColor:     chart.ColorRed,
				StrokeWidth:     2,
				StrokeDashArray: []float64{5.0, 5.0},
			},
			XValues: []float64{t, t},
			YValues: []float64{0, peak},
		})
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// EncodeHistogramChart renders the chart and wraps it like EncodeBase64PNG.
func EncodeHistogramChart(counts []int64, threshold int, title string) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := RenderHistogramChart(counts, threshold, title, &buf); err != nil {
		return nil, err
	}
	return &EncodedImage{
		Width:       ChartWidth,
		Height:      ChartHeight,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
