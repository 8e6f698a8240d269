package dashboard

// TodayStats is the dashboard header card data for the current local day.
type TodayStats struct {
	Date          string `json:"date"`
	EventsToday   int    `json:"events_today"`
	PresentCount  int    `json:"present_count"`
	LateArrivals  int    `json:"late_arrivals"`
	ActiveDevices int    `json:"active_devices"`
}
