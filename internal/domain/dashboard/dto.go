package dashboard

// Stats is the dashboard rollup: simple read-only counts.
type Stats struct {
	TotalEmployees   int64  `json:"totalEmployees"`
	PresentToday     int64  `json:"presentToday"`
	PendingLeaves    int64  `json:"pendingLeaves"`
	UpcomingHolidays int64  `json:"upcomingHolidays"`
	Date             string `json:"date"`
}
