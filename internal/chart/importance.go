// Package chart renders cross-validation results as images.
package chart

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/boostcv/cv"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Size of the rendered image.
const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// ImportancePlot builds a bar chart of the top features of a ranking.
// top <= 0 keeps every feature.
func ImportancePlot(ranking cv.ImportanceRanking, top int) (*plot.Plot, error) {
	if len(ranking) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "chart: no feature importance")
	}
	if top > 0 && top < len(ranking) {
		ranking = ranking[:top]
	}

	values := make(plotter.Values, len(ranking))
	names := make([]string, len(ranking))
	for i, fs := range ranking {
		values[i] = fs.Importance
		names[i] = fs.Feature
	}

	p := plot.New()
	p.Title.Text = "Feature importance (mean over folds)"
	p.Y.Label.Text = "importance"

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, errors.Wrap(err, "chart: bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotter.DefaultLineStyle.Color
	p.Add(bars)
	p.NominalX(names...)

	return p, nil
}

// WriteImportance renders the chart in format ("png", "svg", "pdf", ...) to w.
func WriteImportance(w io.Writer, ranking cv.ImportanceRanking, top int, format string) error {
	p, err := ImportancePlot(ranking, top)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return errors.Wrapf(err, "chart: format %q", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "chart: write")
	}
	return nil
}

// SaveImportance writes the chart to path, choosing the format from its
// extension.
func SaveImportance(path string, ranking cv.ImportanceRanking, top int) (err error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return errors.NewValidationError("path", "needs an image extension such as .png", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "chart: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "chart: close %s", path)
		}
	}()
	return WriteImportance(f, ranking, top, ext)
}
