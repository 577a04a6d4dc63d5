package report

import (
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotFitness 画出每一代冲突分数的平均值、最小值和最大值，保存为 PNG
func PlotFitness(timetable *domain.Timetable, path string) error {
	if len(timetable.Stats) == 0 {
		return errors.New("没有可供绘制的统计数据")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fitness Progression - %s", timetable.Variant)
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	avgPts := make(plotter.XYs, len(timetable.Stats))
	minPts := make(plotter.XYs, len(timetable.Stats))
	maxPts := make(plotter.XYs, len(timetable.Stats))
	for i, stats := range timetable.Stats {
		gen := float64(stats.Generation)
		avgPts[i] = plotter.XY{X: gen, Y: stats.Mean}
		minPts[i] = plotter.XY{X: gen, Y: float64(stats.Min)}
		maxPts[i] = plotter.XY{X: gen, Y: float64(stats.Max)}
	}

	lines := []struct {
		name string
		pts  plotter.XYs
	}{
		{"avg", avgPts},
		{"min", minPts},
		{"max", maxPts},
	}
	for i, l := range lines {
		line, err := plotter.NewLine(l.pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(l.name, line)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
