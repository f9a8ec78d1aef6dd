package models

import (
	"time"

	"github.com/google/uuid"
)

// PerformerKind tags who carried out an audited action.
type PerformerKind string

const (
	PerformerKindUser     PerformerKind = "user"
	PerformerKindEmployee PerformerKind = "employee"
	PerformerKindSystem   PerformerKind = "system"
)

// Performer identifies the actor behind an audit entry. It replaces the
// untyped JSON metadata blobs previously attached to audit rows; the kind
// tag is validated at the boundary so consumers never parse loose JSON.
type Performer struct {
	Kind PerformerKind `json:"kind" validate:"required,oneof=user employee system"`
	ID   string        `json:"id" validate:"required"`
	Name string        `json:"name" validate:"required"`
	Role string        `json:"role,omitempty"`
}

// Validate checks the performer's tagged-variant shape.
func (p Performer) Validate() error {
	return Validate.Struct(p)
}

// SystemPerformer returns a performer for actions taken by the system itself.
func SystemPerformer(name string) Performer {
	return Performer{
		Kind: PerformerKindSystem,
		ID:   uuid.NewString(),
		Name: name,
	}
}

// AuditEntry records a triage action against an issue.
type AuditEntry struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issue_id"`
	Action    string    `json:"action"`
	Performer Performer `json:"performer"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuditEntry builds an audit entry with a fresh identifier.
func NewAuditEntry(issueID, action string, performer Performer, at time.Time) AuditEntry {
	return AuditEntry{
		ID:        uuid.NewString(),
		IssueID:   issueID,
		Action:    action,
		Performer: performer,
		CreatedAt: at,
	}
}
