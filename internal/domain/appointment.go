package domain

import "time"

// Appointment is created by an external intake flow; this service only reads
// and updates it. Date and Time are free-text strings as captured.
type Appointment struct {
	ID                 string
	Date               string
	Time               string
	ConfirmationMethod string
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CalendarSynced     bool
	CalendarEventID    *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
