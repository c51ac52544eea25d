// Package chart renders the catalog reports as PNG images.
package chart

import (
	"io"
	"time"

	"recipe-catalog/domain"

	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	width  = 800
	height = 480
)

func maxLabelCount(data []domain.LabelCount) int {
	m := 1
	for _, d := range data {
		if d.Count > m {
			m = d.Count
		}
	}
	return m
}

// TopIngredients draws a bar chart of ingredient usage.
func TopIngredients(w io.Writer, data []domain.LabelCount) error {
	if len(data) == 0 {
		return domain.ErrChartEmpty
	}

	bars := make([]gochart.Value, 0, len(data))
	for _, d := range data {
		bars = append(bars, gochart.Value{Label: d.Label, Value: float64(d.Count)})
	}

	graph := gochart.BarChart{
		Title:  "Top Ingredients",
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth: 60,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxLabelCount(data))},
		},
		Bars: bars,
	}
	return graph.Render(gochart.PNG, w)
}

// DifficultyDistribution draws a pie chart of recipes per difficulty.
func DifficultyDistribution(w io.Writer, data []domain.LabelCount) error {
	if len(data) == 0 {
		return domain.ErrChartEmpty
	}

	values := make([]gochart.Value, 0, len(data))
	for _, d := range data {
		values = append(values, gochart.Value{Label: d.Label, Value: float64(d.Count)})
	}

	graph := gochart.PieChart{
		Title:  "Recipe Difficulty",
		Width:  height,
		Height: height,
		Values: values,
	}
	return graph.Render(gochart.PNG, w)
}

// CreationTrend draws recipes created per day as a line chart.
func CreationTrend(w io.Writer, data []domain.DateCount) error {
	if len(data) == 0 {
		return domain.ErrChartEmpty
	}

	xs := make([]time.Time, 0, len(data))
	ys := make([]float64, 0, len(data))
	maxCount := 1
	for _, d := range data {
		day, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return err
		}
		xs = append(xs, day)
		ys = append(ys, float64(d.Count))
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}

	// pad half a day on both sides so a single day still has a width
	first := xs[0].Add(-12 * time.Hour)
	last := xs[len(xs)-1].Add(12 * time.Hour)

	graph := gochart.Chart{
		Title:  "Recipes Created",
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(first),
				Max: gochart.TimeToFloat64(last),
			},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "Recipes",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(gochart.PNG, w)
}
