package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validate is the shared struct validator for boundary records.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// ErrMalformedTimestamp is returned when a caller-supplied timestamp string
// cannot be parsed. Timestamps are validated here so the calendar and SLA
// arithmetic only ever sees well-formed instants.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// IssueRecord is the raw shape of an issue row as exported by storage.
// Timestamps are RFC 3339 strings; optional ones may be empty.
type IssueRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Status          string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	Priority        string `json:"priority" validate:"required"`
	EmployeeID      string `json:"employee_id" validate:"required"`
	AssigneeID      string `json:"assignee_id"`
	CreatedAt       string `json:"created_at" validate:"required"`
	UpdatedAt       string `json:"updated_at"`
	FirstResponseAt string `json:"first_response_at"`
	ResolvedAt      string `json:"resolved_at"`
	ClosedAt        string `json:"closed_at"`
}

// DecodeIssue validates a raw record and converts it into a typed Issue.
// Records without an id are assigned one; legacy exports predate issue ids.
func DecodeIssue(rec IssueRecord) (Issue, error) {
	if err := Validate.Struct(rec); err != nil {
		return Issue{}, fmt.Errorf("invalid issue record: %w", err)
	}

	createdAt, err := parseTimestamp("created_at", rec.CreatedAt)
	if err != nil {
		return Issue{}, err
	}

	updatedAt := createdAt
	if rec.UpdatedAt != "" {
		updatedAt, err = parseTimestamp("updated_at", rec.UpdatedAt)
		if err != nil {
			return Issue{}, err
		}
	}

	issue := Issue{
		ID:         rec.ID,
		Title:      rec.Title,
		Type:       rec.Type,
		Status:     IssueStatus(rec.Status),
		Priority:   IssuePriority(rec.Priority),
		EmployeeID: rec.EmployeeID,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if rec.AssigneeID != "" {
		issue.AssigneeID = &rec.AssigneeID
	}

	if issue.FirstResponseAt, err = parseOptionalTimestamp("first_response_at", rec.FirstResponseAt); err != nil {
		return Issue{}, err
	}
	if issue.ResolvedAt, err = parseOptionalTimestamp("resolved_at", rec.ResolvedAt); err != nil {
		return Issue{}, err
	}
	if issue.ClosedAt, err = parseOptionalTimestamp("closed_at", rec.ClosedAt); err != nil {
		return Issue{}, err
	}

	return issue, nil
}

// DecodeIssues decodes a batch of records, failing on the first bad one.
func DecodeIssues(recs []IssueRecord) ([]Issue, error) {
	issues := make([]Issue, 0, len(recs))
	for i, rec := range recs {
		issue, err := DecodeIssue(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrMalformedTimestamp, field, value)
	}
	return t, nil
}

func parseOptionalTimestamp(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseTimestamp(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
