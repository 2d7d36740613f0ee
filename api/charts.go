package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// handleTrajectoryChart renders an HTML overlay of every trial's
// trajectory in canvas coordinates (y flipped so up is up).
func (s *Server) handleTrajectoryChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	h := rec.Canvas.Height
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Session Trajectories", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Trajectory Overlay",
			Subtitle: fmt.Sprintf("run=%s trials=%d mode=%s", rec.RunID, len(rec.Trials), rec.Mode),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: rec.Canvas.Width, Name: "X (px)"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: h, Name: "Y (px)"}),
	)

	for i, trial := range rec.Trials {
		data := make([]opts.LineData, 0, len(trial.Trajectory))
		for _, p := range trial.Trajectory {
			data = append(data, opts.LineData{Value: []interface{}{p.X, h - p.Y}})
		}
		line.AddSeries(fmt.Sprintf("trial %d", i+1), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleVelocityChart renders per-trial instantaneous velocity against
// time since trial start. Zero-duration segments are skipped, matching
// the analyzer.
func (s *Server) handleVelocityChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Velocity Profiles", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Velocity Profiles",
			Subtitle: fmt.Sprintf("run=%s trials=%d", rec.RunID, len(rec.Trials)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "v (px/s)"}),
	)

	for i, trial := range rec.Trials {
		traj := trial.Trajectory
		data := make([]opts.LineData, 0, len(traj))
		for j := 1; j < len(traj); j++ {
			dt := traj[j].T - traj[j-1].T
			if dt <= 0 {
				continue
			}
			d := segmentDistance(traj[j-1].X, traj[j-1].Y, traj[j].X, traj[j].Y)
			data = append(data, opts.LineData{Value: []interface{}{traj[j].T - traj[0].T, d / dt}})
		}
		line.AddSeries(fmt.Sprintf("trial %d", i+1), data)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
