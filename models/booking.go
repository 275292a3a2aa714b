package models

// BookingDraft is the partially filled room booking collected by the dialogue.
// A field for step N is set only once Step > N.
type BookingDraft struct {
	Date         *string `json:"date"`
	TimeSlot     *string `json:"timeSlot"`
	Capacity     *int    `json:"capacity"`
	SelectedRoom *string `json:"selectedRoom"`
	EventName    *string `json:"eventName"`
	Step         int     `json:"step"` // 1..6
}

// BookingRecord is a completed booking handed to event creation.
type BookingRecord struct {
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	Capacity     int    `json:"capacity"`
	SelectedRoom string `json:"selectedRoom"`
	EventName    string `json:"eventName"`
	Agenda       string `json:"agenda,omitempty"`
}
