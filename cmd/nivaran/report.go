package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"

	"github.com/nivaran-io/nivaran-ce/internal/access"
	"github.com/nivaran-io/nivaran-ce/internal/models"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute TAT and SLA compliance stats over an issue export",
	Long: `Report restricts the export to what the given role may see (city
scoping applies when an employee export is supplied), then prints
turnaround-time statistics and a per-status SLA breakdown.`,
	Run: runReport,
}

var nearBreachCmd = &cobra.Command{
	Use:   "near-breach",
	Short: "List open issues approaching their resolution deadline",
	Run:   runNearBreach,
}

var checkAccessCmd = &cobra.Command{
	Use:   "check-access ROLE PERMISSION",
	Short: "Probe the access policy for a role",
	Args:  cobra.ExactArgs(2),
	Run:   runCheckAccess,
}

func runReport(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	engine, policy, err := buildEngines(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	issues, err := loadIssues(issuesFlag)
	if err != nil {
		fatalf("%v", err)
	}

	actor := access.Actor{ID: "cli", Role: roleFlag, City: cityFlag}
	scope := policy.ResolveCityScope(actor)
	if scope.Restricted {
		if employeesFlag == "" {
			fatalf("role %q is city-restricted; --employees is required to resolve issue ownership", roleFlag)
		}
		employees, err := loadEmployees(employeesFlag)
		if err != nil {
			fatalf("%v", err)
		}
		issues = access.FilterIssues(issues, employees, scope)
	}

	now := time.Now()
	performer := models.SystemPerformer("nivaran-cli")
	fmt.Printf("Report generated by %s (%s) at %s\n", performer.Name, performer.ID, now.Format(time.RFC3339))
	fmt.Printf("Visibility: role=%q restricted=%v issues=%d\n\n", roleFlag, scope.Restricted, len(issues))

	stats := engine.ComputeTATStats(issues)
	fmt.Println("Turnaround time (business hours):")
	fmt.Printf("  resolved issues:  %d\n", stats.Count)
	fmt.Printf("  average:          %.2f\n", stats.AverageHours)
	fmt.Printf("  median:           %.2f\n", stats.MedianHours)
	fmt.Printf("  min / max:        %.2f / %.2f\n", stats.MinHours, stats.MaxHours)
	fmt.Printf("  SLA compliance:   %.1f%% (%d of %d)\n\n", stats.SLAComplianceRate, stats.CompliantCount, stats.Count)

	counts := map[string]int{}
	var oldestOpen *models.Issue
	for i, issue := range issues {
		m := engine.ComputeMetrics(issue, now)
		counts[string(m.Status)]++
		if !issue.Status.IsTerminal() {
			if oldestOpen == nil || issue.CreatedAt.Before(oldestOpen.CreatedAt) {
				oldestOpen = &issues[i]
			}
		}
	}

	fmt.Println("SLA status:")
	for _, status := range []string{"on_track", "escalation_due", "response_breached", "breached"} {
		fmt.Printf("  %-18s %d\n", status, counts[status])
	}
	if oldestOpen != nil {
		fmt.Printf("\nOldest open issue: %s (created %s)\n", oldestOpen.ID, timeago.English.Format(oldestOpen.CreatedAt))
	}
}

func runNearBreach(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	engine, _, err := buildEngines(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	issues, err := loadIssues(issuesFlag)
	if err != nil {
		fatalf("%v", err)
	}

	window := windowFlag
	if window <= 0 {
		window = cfg.SLA.NearBreachWindowHours
	}

	now := time.Now()
	near := engine.IssuesNearBreach(issues, window, now)
	sort.Slice(near, func(i, j int) bool { return near[i].CreatedAt.Before(near[j].CreatedAt) })

	fmt.Printf("%d issue(s) within %.1f business hours of resolution breach:\n", len(near), window)
	for _, issue := range near {
		m := engine.ComputeMetrics(issue, now)
		fmt.Printf("  %-36s %-8s %5.1fh remaining (created %s)\n",
			issue.ID, issue.Priority, m.ResolutionRemaining, timeago.English.Format(issue.CreatedAt))
	}
}

func runCheckAccess(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	_, policy, err := buildEngines(cfg)
	if err != nil {
		fatalf("%v", err)
	}

	role, permission := args[0], args[1]
	actor := access.Actor{ID: "cli", Role: role, City: cityFlag}

	err = policy.RequirePermission(&actor, access.Permission(permission))
	switch {
	case err == nil:
		fmt.Printf("ALLOW  %s -> %s\n", role, permission)
	case errors.Is(err, access.ErrPermissionDenied):
		fmt.Printf("DENY   %s -> %s\n", role, permission)
	default:
		fatalf("%v", err)
	}

	scope := policy.ResolveCityScope(actor)
	if scope.Restricted {
		cities := make([]string, 0, len(scope.AllowedCities))
		for c := range scope.AllowedCities {
			cities = append(cities, c)
		}
		fmt.Printf("Scope: restricted to %v\n", cities)
	} else {
		fmt.Println("Scope: all cities")
	}
}
