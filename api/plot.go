package api

import (
	"fmt"
	"image/color"
	"math"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func segmentDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// handleTrajectoryPlot renders the trajectory overlay as a static PNG,
// with the straight start-to-hit line drawn for each trial.
func (s *Server) handleTrajectoryPlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Session Trajectories (%d trials)", len(rec.Trials))
	p.X.Label.Text = "X (px)"
	p.Y.Label.Text = "Y (px)"
	p.X.Min, p.X.Max = 0, rec.Canvas.Width
	p.Y.Min, p.Y.Max = 0, rec.Canvas.Height

	h := rec.Canvas.Height
	n := len(rec.Trials)
	for i, trial := range rec.Trials {
		traj := trial.Trajectory
		if len(traj) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(traj))
		for j, sample := range traj {
			pts[j] = plotter.XY{X: sample.X, Y: h - sample.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build plot: %v", err))
			return
		}
		// Later trials drawn more opaque, as in the session review UI.
		alpha := uint8(80 + 175*i/max(1, n-1))
		line.Color = color.NRGBA{R: 33, G: 150, B: 243, A: alpha}
		p.Add(line)

		ideal := plotter.XYs{
			{X: traj[0].X, Y: h - traj[0].Y},
			{X: traj[len(traj)-1].X, Y: h - traj[len(traj)-1].Y},
		}
		idealLine, err := plotter.NewLine(ideal)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build plot: %v", err))
			return
		}
		idealLine.Color = color.NRGBA{R: 244, G: 67, B: 54, A: 100}
		idealLine.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(idealLine)
	}

	wt, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render plot: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := wt.WriteTo(w); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to write plot: %v", err))
	}
}
