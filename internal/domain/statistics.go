package domain

// Statistics is the server-computed summary of events per status
type Statistics struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// CountFor returns the counter of a single status
func (s Statistics) CountFor(status EventStatus) int {
	switch status {
	case StatusUpcoming:
		return s.Upcoming
	case StatusOngoing:
		return s.Ongoing
	case StatusCompleted:
		return s.Completed
	case StatusCancelled:
		return s.Cancelled
	default:
		return 0
	}
}

// ComputeStatistics tallies events by status
func ComputeStatistics(events []Event) Statistics {
	stats := Statistics{Total: len(events)}
	for _, e := range events {
		switch e.Status {
		case StatusUpcoming:
			stats.Upcoming++
		case StatusOngoing:
			stats.Ongoing++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
