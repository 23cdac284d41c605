package domain

// StatsSummary aggregates the whole trips table.
// Averages are zero when the table is empty.
type StatsSummary struct {
	TotalTrips  int64   `json:"total_trips"`
	AvgDuration float64 `json:"avg_duration"`
	AvgDistance float64 `json:"avg_distance"`
	AvgSpeed    float64 `json:"avg_speed"`
	AvgFare     float64 `json:"avg_fare"`
	TotalFare   float64 `json:"total_fare"`
}
