package stats

import (
	"context"

	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs     []model.RunStats
	Selected model.RunStats
	Rounds   []model.RoundRecord
	Outcomes map[string]int
}

// HasSelection reports whether a run was picked for the per-round view.
func (r Report) HasSelection() bool {
	return r.Selected.ID != 0
}

// BuildReport loads runs and the rounds of the selected run. Without
// cfg.Run the most recent run is selected.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}

	outcomes, err := st.OutcomeCounts(ctx, runIDs(runs))
	if err != nil {
		return Report{}, err
	}
	report := Report{Runs: runs, Outcomes: outcomes}

	switch {
	case cfg.Run != "":
		report.Selected, err = st.GetRun(ctx, cfg.Run)
		if err != nil {
			return Report{}, err
		}
	case len(runs) > 0:
		report.Selected = runs[len(runs)-1]
	default:
		return report, nil
	}

	report.Rounds, err = st.ListRounds(ctx, report.Selected.ID)
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

func runIDs(runs []model.RunStats) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
