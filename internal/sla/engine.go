// Package sla computes per-issue SLA metrics and aggregate turnaround-time
// statistics for grievance issues over the business calendar.
package sla

import (
	"log"
	"time"

	"github.com/nivaran-io/nivaran-ce/internal/calendar"
	"github.com/nivaran-io/nivaran-ce/internal/models"
)

// Config holds the SLA thresholds for one priority, in business hours.
type Config struct {
	ResponseTimeHours   float64
	ResolutionTimeHours float64
	EscalationTimeHours float64
}

// Status is the single rolled-up SLA state of an issue.
type Status string

const (
	StatusOnTrack          Status = "on_track"
	StatusResponseBreached Status = "response_breached"
	StatusEscalationDue    Status = "escalation_due"
	StatusBreached         Status = "breached"
)

// DefaultConfigs returns the stock per-priority thresholds.
func DefaultConfigs() map[models.IssuePriority]Config {
	return map[models.IssuePriority]Config{
		models.PriorityLow:      {ResponseTimeHours: 2, ResolutionTimeHours: 8, EscalationTimeHours: 16},
		models.PriorityMedium:   {ResponseTimeHours: 4, ResolutionTimeHours: 16, EscalationTimeHours: 24},
		models.PriorityHigh:     {ResponseTimeHours: 8, ResolutionTimeHours: 24, EscalationTimeHours: 36},
		models.PriorityCritical: {ResponseTimeHours: 12, ResolutionTimeHours: 48, EscalationTimeHours: 72},
	}
}

// Engine computes SLA metrics. It is stateless apart from its immutable
// calendar and threshold table and is safe for concurrent use.
type Engine struct {
	calendar *calendar.Calendar
	configs  map[models.IssuePriority]Config
	logger   *log.Logger
}

// NewEngine creates an SLA engine. A nil configs map uses the defaults;
// priorities missing from a partial map are filled in from the defaults so
// the medium fallback always exists.
func NewEngine(cal *calendar.Calendar, configs map[models.IssuePriority]Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	merged := DefaultConfigs()
	for p, c := range configs {
		merged[p] = c
	}
	return &Engine{calendar: cal, configs: merged, logger: logger}
}

// ConfigFor returns the thresholds for a priority, falling back to medium
// for unrecognized values. Soft failure: bad priorities never error.
func (e *Engine) ConfigFor(priority models.IssuePriority) Config {
	if c, ok := e.configs[priority]; ok {
		return c
	}
	e.logger.Printf("unknown priority %q, using medium thresholds", priority)
	return e.configs[models.PriorityMedium]
}

// Metrics is a point-in-time SLA snapshot for one issue. Durations are
// business hours; nil pointers mean the underlying milestone has not been
// reached. Recomputed on demand, never persisted.
type Metrics struct {
	IssueID             string               `json:"issue_id"`
	Priority            models.IssuePriority `json:"priority"`
	ElapsedHours        float64              `json:"elapsed_hours"`
	ResponseTimeHours   *float64             `json:"response_time_hours,omitempty"`
	ResolutionTimeHours *float64             `json:"resolution_time_hours,omitempty"`
	ResponseBreached    bool                 `json:"response_breached"`
	ResolutionBreached  bool                 `json:"resolution_breached"`
	EscalationDue       bool                 `json:"escalation_due"`
	ResponseRemaining   float64              `json:"response_remaining_hours"`
	ResolutionRemaining float64              `json:"resolution_remaining_hours"`
	EscalationRemaining float64              `json:"escalation_remaining_hours"`
	ResolutionDueAt     time.Time            `json:"resolution_due_at"`
	Status              Status               `json:"sla_status"`
}

// ComputeMetrics derives the SLA snapshot for an issue as of now.
// For milestones not yet reached, live elapsed business time stands in for
// the measured value: an in-flight issue counts as breached the moment its
// elapsed time crosses the threshold.
func (e *Engine) ComputeMetrics(issue models.Issue, now time.Time) Metrics {
	cfg := e.ConfigFor(issue.Priority)
	elapsed := e.calendar.BusinessHoursBetween(issue.CreatedAt, now)

	m := Metrics{
		IssueID:         issue.ID,
		Priority:        issue.Priority,
		ElapsedHours:    elapsed,
		ResolutionDueAt: e.calendar.AddBusinessHours(issue.CreatedAt, cfg.ResolutionTimeHours),
	}

	if issue.FirstResponseAt != nil {
		rt := e.calendar.BusinessHoursBetween(issue.CreatedAt, *issue.FirstResponseAt)
		m.ResponseTimeHours = &rt
		m.ResponseBreached = rt > cfg.ResponseTimeHours
	} else {
		m.ResponseBreached = elapsed > cfg.ResponseTimeHours
	}

	if issue.Status.IsTerminal() && issue.ResolvedAt != nil {
		st := e.calendar.BusinessHoursBetween(issue.CreatedAt, *issue.ResolvedAt)
		m.ResolutionTimeHours = &st
		m.ResolutionBreached = st > cfg.ResolutionTimeHours
	} else {
		m.ResolutionBreached = elapsed > cfg.ResolutionTimeHours
	}

	m.EscalationDue = elapsed > cfg.EscalationTimeHours

	m.ResponseRemaining = remaining(cfg.ResponseTimeHours, elapsed)
	m.ResolutionRemaining = remaining(cfg.ResolutionTimeHours, elapsed)
	m.EscalationRemaining = remaining(cfg.EscalationTimeHours, elapsed)

	switch {
	case m.ResolutionBreached:
		m.Status = StatusBreached
	case m.ResponseBreached:
		m.Status = StatusResponseBreached
	case m.EscalationDue:
		m.Status = StatusEscalationDue
	default:
		m.Status = StatusOnTrack
	}

	return m
}

func remaining(threshold, elapsed float64) float64 {
	if r := threshold - elapsed; r > 0 {
		return r
	}
	return 0
}
