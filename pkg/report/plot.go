package report

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNothingToPlot indicates a Summary without strata.
var ErrNothingToPlot = errors.New("report: summary has no strata to plot")

// Plot saves a grouped bar chart of train and test rows per stratum. The
// image format follows the extension of path (.png, .svg, .pdf, ...).
func Plot(s Summary, path string) error {
	if len(s.Strata) == 0 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = "Rows per stratum"
	p.Y.Label.Text = "Rows"

	names := make([]string, len(s.Strata))
	train := make(plotter.Values, len(s.Strata))
	test := make(plotter.Values, len(s.Strata))
	for i, st := range s.Strata {
		names[i] = st.Label
		train[i] = float64(st.Train)
		test[i] = float64(st.Test)
	}

	width := vg.Points(18)
	outline := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	trainBars, err := plotter.NewBarChart(train, width)
	if err != nil {
		return fmt.Errorf("train bars: %w", err)
	}
	trainBars.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	trainBars.LineStyle = outline
	trainBars.Offset = -width / 2

	testBars, err := plotter.NewBarChart(test, width)
	if err != nil {
		return fmt.Errorf("test bars: %w", err)
	}
	testBars.Color = color.RGBA{R: 255, A: 255}
	testBars.LineStyle = outline
	testBars.Offset = width / 2

	p.Add(trainBars, testBars)
	p.Legend.Add("train", trainBars)
	p.Legend.Add("test", testBars)
	p.Legend.Top = true
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
