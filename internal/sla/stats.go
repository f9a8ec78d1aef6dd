package sla

import (
	"sort"
	"time"

	"github.com/nivaran-io/nivaran-ce/internal/models"
)

// TATStats aggregates turnaround times over a set of resolved issues.
// All durations are business hours.
type TATStats struct {
	Count             int     `json:"count"`
	AverageHours      float64 `json:"average_hours"`
	MedianHours       float64 `json:"median_hours"`
	MinHours          float64 `json:"min_hours"`
	MaxHours          float64 `json:"max_hours"`
	CompliantCount    int     `json:"compliant_count"`
	SLAComplianceRate float64 `json:"sla_compliance_rate"`
}

// ComputeTATStats aggregates TAT over resolved and closed issues. An issue
// missing its resolution timestamp falls back to its last-updated time;
// legacy records predate resolved_at. An empty input yields a zeroed
// result.
func (e *Engine) ComputeTATStats(issues []models.Issue) TATStats {
	var tats []float64
	compliant := 0

	for _, issue := range issues {
		if !issue.Status.IsTerminal() {
			continue
		}
		end := issue.UpdatedAt
		if issue.ResolvedAt != nil {
			end = *issue.ResolvedAt
		}
		tat := e.calendar.BusinessHoursBetween(issue.CreatedAt, end)
		tats = append(tats, tat)
		if tat <= e.ConfigFor(issue.Priority).ResolutionTimeHours {
			compliant++
		}
	}

	if len(tats) == 0 {
		return TATStats{}
	}

	sort.Float64s(tats)
	var sum float64
	for _, t := range tats {
		sum += t
	}

	return TATStats{
		Count:        len(tats),
		AverageHours: sum / float64(len(tats)),
		// Lower-middle median, no interpolation.
		MedianHours:       tats[(len(tats)-1)/2],
		MinHours:          tats[0],
		MaxHours:          tats[len(tats)-1],
		CompliantCount:    compliant,
		SLAComplianceRate: float64(compliant) / float64(len(tats)) * 100,
	}
}

// IssuesNearBreach returns open issues whose remaining resolution budget as
// of now is strictly positive and within hoursBeforeBreach. Already-breached
// issues are excluded; they belong on the breach report, not the warning
// list.
func (e *Engine) IssuesNearBreach(issues []models.Issue, hoursBeforeBreach float64, now time.Time) []models.Issue {
	var near []models.Issue
	for _, issue := range issues {
		if issue.Status.IsTerminal() {
			continue
		}
		cfg := e.ConfigFor(issue.Priority)
		left := cfg.ResolutionTimeHours - e.calendar.BusinessHoursBetween(issue.CreatedAt, now)
		if left > 0 && left <= hoursBeforeBreach {
			near = append(near, issue)
		}
	}
	return near
}
