package models

// Holiday represents a non-working day in the business calendar.
// Date is an ISO calendar date (YYYY-MM-DD) interpreted in IST. Recurring
// holidays apply on that month/day every year; one-time holidays apply only
// in the year given by Date.
type Holiday struct {
	Name      string `json:"name" yaml:"name"`
	Date      string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Recurring bool   `json:"recurring" yaml:"recurring"`
}
