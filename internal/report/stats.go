package report

// Stats are derived counts over a queried set, never stored. Assigned and
// In Progress land in the same active bucket, matching how every dashboard
// in the original app aggregated them.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	WithPhoto  int `json:"withPhoto"`
	WithGPS    int `json:"withGPS"`
}

// ComputeStats aggregates the given reports.
func ComputeStats(reports []Report) Stats {
	s := Stats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress, StatusAssigned:
			s.InProgress++
		case StatusResolved:
			s.Resolved++
		}
		if r.Image != nil {
			s.WithPhoto++
		}
		if r.Coordinates != nil {
			s.WithGPS++
		}
	}
	return s
}
