package stats

import "sort"

// OutcomeShare is one outcome's count and fraction of all rounds.
type OutcomeShare struct {
	Outcome string
	Count   int
	Share   float64
}

// OutcomeShares orders outcome counts by frequency, ties broken by name.
func OutcomeShares(counts map[string]int) []OutcomeShare {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil
	}
	out := make([]OutcomeShare, 0, len(counts))
	for name, n := range counts {
		out = append(out, OutcomeShare{Outcome: name, Count: n, Share: ratio(n, total, 4)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Outcome < out[j].Outcome
		}
		return out[i].Count > out[j].Count
	})
	return out
}
