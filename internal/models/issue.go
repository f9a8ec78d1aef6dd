package models

import "time"

// IssueStatus represents the lifecycle state of a grievance issue.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusClosed     IssueStatus = "closed"
)

// IsTerminal reports whether the status is resolved or closed.
func (s IssueStatus) IsTerminal() bool {
	return s == IssueStatusResolved || s == IssueStatusClosed
}

// IssuePriority represents SLA urgency.
type IssuePriority string

const (
	PriorityLow      IssuePriority = "low"
	PriorityMedium   IssuePriority = "medium"
	PriorityHigh     IssuePriority = "high"
	PriorityCritical IssuePriority = "critical"
)

// Issue represents a grievance raised by an employee.
// All timestamps are UTC instants; calendar classification happens in IST.
type Issue struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Type            string        `json:"type"`
	Status          IssueStatus   `json:"status"`
	Priority        IssuePriority `json:"priority"`
	EmployeeID      string        `json:"employee_id"`
	AssigneeID      *string       `json:"assignee_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	FirstResponseAt *time.Time    `json:"first_response_at,omitempty"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
	ClosedAt        *time.Time    `json:"closed_at,omitempty"`
}
