package models

// LandingReminderPayload is carried by the asynq task fired at a reserved minute.
type LandingReminderPayload struct {
	EventID string `json:"eventId"`
	Minute  int    `json:"minute"`
	Time    string `json:"time"`
}
