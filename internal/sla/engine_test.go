package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaran-io/nivaran-ce/internal/calendar"
	"github.com/nivaran-io/nivaran-ce/internal/models"
)

func ist(day, hour, min int) time.Time {
	return time.Date(2025, time.January, day, hour, min, 0, 0, calendar.IST)
}

func ptr(t time.Time) *time.Time { return &t }

func newTestEngine() *Engine {
	return NewEngine(calendar.MustDefault(), nil, nil)
}

func TestComputeMetrics(t *testing.T) {
	engine := newTestEngine()

	t.Run("critical resolved past 48 business hours is breached", func(t *testing.T) {
		// Mon Jan 6 09:00 + 48 business hours ends Sat Jan 11 17:00;
		// resolving Mon Jan 13 10:00 lands at 49.
		issue := models.Issue{
			ID:              "iss-1",
			Status:          models.IssueStatusResolved,
			Priority:        models.PriorityCritical,
			CreatedAt:       ist(6, 9, 0),
			FirstResponseAt: ptr(ist(6, 10, 0)),
			ResolvedAt:      ptr(ist(13, 10, 0)),
		}

		m := engine.ComputeMetrics(issue, ist(13, 10, 0))
		require.NotNil(t, m.ResolutionTimeHours)
		assert.InDelta(t, 49, *m.ResolutionTimeHours, 1e-9)
		assert.True(t, m.ResolutionBreached)
		assert.Equal(t, StatusBreached, m.Status)
	})

	t.Run("critical resolved within 48 business hours is on track", func(t *testing.T) {
		issue := models.Issue{
			ID:              "iss-2",
			Status:          models.IssueStatusResolved,
			Priority:        models.PriorityCritical,
			CreatedAt:       ist(6, 9, 0),
			FirstResponseAt: ptr(ist(6, 10, 0)),
			ResolvedAt:      ptr(ist(11, 17, 0)), // exactly 48
		}

		m := engine.ComputeMetrics(issue, ist(11, 17, 0))
		require.NotNil(t, m.ResolutionTimeHours)
		assert.InDelta(t, 48, *m.ResolutionTimeHours, 1e-9)
		assert.False(t, m.ResolutionBreached)
		assert.False(t, m.ResponseBreached)
		assert.Equal(t, StatusOnTrack, m.Status)
	})

	t.Run("open issue judged by live elapsed time", func(t *testing.T) {
		// Medium thresholds: response 4, resolution 16.
		issue := models.Issue{
			ID:        "iss-3",
			Status:    models.IssueStatusOpen,
			Priority:  models.PriorityMedium,
			CreatedAt: ist(6, 9, 0),
		}

		m := engine.ComputeMetrics(issue, ist(6, 14, 0)) // elapsed 5
		assert.Nil(t, m.ResponseTimeHours)
		assert.Nil(t, m.ResolutionTimeHours)
		assert.True(t, m.ResponseBreached)
		assert.False(t, m.ResolutionBreached)
		assert.Equal(t, StatusResponseBreached, m.Status)
		assert.InDelta(t, 11, m.ResolutionRemaining, 1e-9)
		assert.InDelta(t, 0, m.ResponseRemaining, 1e-9)
	})

	t.Run("unknown priority falls back to medium thresholds", func(t *testing.T) {
		issue := models.Issue{
			ID:        "iss-4",
			Status:    models.IssueStatusOpen,
			Priority:  "urgent",
			CreatedAt: ist(6, 9, 0),
		}

		m := engine.ComputeMetrics(issue, ist(6, 14, 0))
		assert.True(t, m.ResponseBreached)
		assert.InDelta(t, 11, m.ResolutionRemaining, 1e-9)
	})

	t.Run("escalation due on a long-lived compliant issue", func(t *testing.T) {
		// Resolved on time, but evaluated once elapsed passes the 72 hour
		// escalation budget.
		issue := models.Issue{
			ID:              "iss-5",
			Status:          models.IssueStatusResolved,
			Priority:        models.PriorityCritical,
			CreatedAt:       ist(6, 9, 0),
			FirstResponseAt: ptr(ist(6, 10, 0)),
			ResolvedAt:      ptr(ist(10, 17, 0)), // 40 business hours
		}

		m := engine.ComputeMetrics(issue, ist(16, 17, 0)) // elapsed 80
		assert.False(t, m.ResolutionBreached)
		assert.False(t, m.ResponseBreached)
		assert.True(t, m.EscalationDue)
		assert.Equal(t, StatusEscalationDue, m.Status)
		assert.Zero(t, m.EscalationRemaining)
	})

	t.Run("resolution due date is derived from the calendar", func(t *testing.T) {
		issue := models.Issue{
			ID:        "iss-6",
			Status:    models.IssueStatusOpen,
			Priority:  models.PriorityMedium,
			CreatedAt: ist(6, 9, 0),
		}

		m := engine.ComputeMetrics(issue, ist(6, 10, 0))
		assert.True(t, m.ResolutionDueAt.After(issue.CreatedAt))
	})
}

func TestComputeTATStats(t *testing.T) {
	engine := newTestEngine()

	t.Run("empty input yields zeroed stats", func(t *testing.T) {
		stats := engine.ComputeTATStats(nil)
		assert.Equal(t, TATStats{}, stats)
	})

	t.Run("aggregates resolved issues only", func(t *testing.T) {
		created := ist(6, 9, 0)
		issues := []models.Issue{
			// TAT 8
			{Status: models.IssueStatusResolved, Priority: models.PriorityHigh, CreatedAt: created, ResolvedAt: ptr(ist(6, 17, 0))},
			// TAT 16 via updated_at fallback: legacy record without resolved_at
			{Status: models.IssueStatusClosed, Priority: models.PriorityHigh, CreatedAt: created, UpdatedAt: ist(7, 17, 0)},
			// TAT 24
			{Status: models.IssueStatusResolved, Priority: models.PriorityHigh, CreatedAt: created, ResolvedAt: ptr(ist(8, 17, 0))},
			// TAT 40, past the 24 hour budget
			{Status: models.IssueStatusResolved, Priority: models.PriorityHigh, CreatedAt: created, ResolvedAt: ptr(ist(10, 17, 0))},
			// Open issues are not part of TAT
			{Status: models.IssueStatusOpen, Priority: models.PriorityHigh, CreatedAt: created},
		}

		stats := engine.ComputeTATStats(issues)
		assert.Equal(t, 4, stats.Count)
		assert.InDelta(t, 22, stats.AverageHours, 1e-9)
		assert.InDelta(t, 16, stats.MedianHours, 1e-9) // lower-middle, no interpolation
		assert.InDelta(t, 8, stats.MinHours, 1e-9)
		assert.InDelta(t, 40, stats.MaxHours, 1e-9)
		assert.Equal(t, 3, stats.CompliantCount)
		assert.InDelta(t, 75, stats.SLAComplianceRate, 1e-9)
	})
}

func TestIssuesNearBreach(t *testing.T) {
	engine := newTestEngine()
	now := ist(8, 14, 0) // Wednesday 14:00

	issues := []models.Issue{
		// elapsed 21, 3 hours left on the 24 hour high budget
		{ID: "warn", Status: models.IssueStatusInProgress, Priority: models.PriorityHigh, CreatedAt: ist(6, 9, 0)},
		// elapsed 10, 14 hours left
		{ID: "fine", Status: models.IssueStatusOpen, Priority: models.PriorityHigh, CreatedAt: ist(7, 12, 0)},
		// elapsed 29, already breached
		{ID: "late", Status: models.IssueStatusOpen, Priority: models.PriorityHigh, CreatedAt: ist(4, 9, 0)},
		// resolved issues never appear
		{ID: "done", Status: models.IssueStatusResolved, Priority: models.PriorityHigh, CreatedAt: ist(6, 9, 0), ResolvedAt: ptr(ist(6, 17, 0))},
	}

	near := engine.IssuesNearBreach(issues, 4, now)
	require.Len(t, near, 1)
	assert.Equal(t, "warn", near[0].ID)
}
