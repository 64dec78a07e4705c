package domain

// AlertStats aggregates the current alert list for chart-style consumers.
type AlertStats struct {
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"bySeverity"`
	ByRegion   map[string]int   `json:"byRegion"`
	ByType     map[string]int   `json:"byType"`
}

// Summarize counts entries by severity, region, and alert type. Pure; the
// input is never mutated.
func Summarize(entries []AlertSummary) AlertStats {
	stats := AlertStats{
		Total:      len(entries),
		BySeverity: make(map[Severity]int),
		ByRegion:   make(map[string]int),
		ByType:     make(map[string]int),
	}
	for _, e := range entries {
		stats.BySeverity[e.Severity]++
		stats.ByRegion[e.Region]++
		stats.ByType[e.AlertType]++
	}
	return stats
}
