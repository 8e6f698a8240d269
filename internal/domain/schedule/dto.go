package schedule

type ScheduleBlockResponse struct {
	ID               string `json:"id"`
	StartClock       string `json:"start_clock"`
	EndClock         string `json:"end_clock"`
	ToleranceMinutes int    `json:"tolerance_minutes"`
}

type ScheduleResponse struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Branch *string                 `json:"branch,omitempty"`
	Blocks []ScheduleBlockResponse `json:"blocks"`
}

type ListSchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
