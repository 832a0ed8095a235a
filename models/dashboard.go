package models

type DashboardStats struct {
	HousesTotal        int `json:"houses_total"`
	ActiveParticipants int `json:"active_participants"`
	EventsScheduled    int `json:"events_scheduled"`
	EventsInProgress   int `json:"events_in_progress"`
	EventsCompleted    int `json:"events_completed"`
	EventsCancelled    int `json:"events_cancelled"`
	ResultsRecorded    int `json:"results_recorded"`
}
