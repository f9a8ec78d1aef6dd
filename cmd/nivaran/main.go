package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nivaran-io/nivaran-ce/internal/access"
	"github.com/nivaran-io/nivaran-ce/internal/calendar"
	"github.com/nivaran-io/nivaran-ce/internal/config"
	"github.com/nivaran-io/nivaran-ce/internal/models"
	"github.com/nivaran-io/nivaran-ce/internal/sla"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "nivaran",
	Short: "Nivaran CLI - employee grievance SLA and access tooling",
	Long: `Nivaran Command Line Interface

Operator tooling for the Nivaran grievance system: SLA/TAT reporting over
issue exports, near-breach warnings, and access-policy probes.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var (
	configFlag    string
	issuesFlag    string
	employeesFlag string
	roleFlag      string
	cityFlag      string
	windowFlag    float64
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config YAML (optional)")

	reportCmd.Flags().StringVar(&issuesFlag, "issues", "issues.json", "Issue export (JSON)")
	reportCmd.Flags().StringVar(&employeesFlag, "employees", "", "Employee export (JSON), required for city scoping")
	reportCmd.Flags().StringVar(&roleFlag, "role", models.RoleSuperAdmin, "Role to evaluate visibility as")
	reportCmd.Flags().StringVar(&cityFlag, "city", "", "City of the evaluating actor")

	nearBreachCmd.Flags().StringVar(&issuesFlag, "issues", "issues.json", "Issue export (JSON)")
	nearBreachCmd.Flags().Float64Var(&windowFlag, "window", 0, "Warning window in business hours (0 = config value)")

	checkAccessCmd.Flags().StringVar(&cityFlag, "city", "", "City of the actor")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(nearBreachCmd)
	rootCmd.AddCommand(checkAccessCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Nivaran CLI %s\n", rootCmd.Version)
	},
}

// buildEngines assembles the calendar, SLA and access engines from config.
func buildEngines(cfg *config.Config) (*sla.Engine, *access.Engine, error) {
	workdays, err := calendar.ParseWeekdays(cfg.Calendar.Workdays)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid workdays: %w", err)
	}

	var holidays []models.Holiday
	if cfg.Calendar.HolidaysFile != "" {
		holidays, err = config.LoadHolidays(cfg.Calendar.HolidaysFile)
		if err != nil {
			return nil, nil, err
		}
	}

	cal, err := calendar.New(cfg.Calendar.StartHour, cfg.Calendar.EndHour, workdays, holidays)
	if err != nil {
		return nil, nil, err
	}

	thresholds := make(map[models.IssuePriority]sla.Config, len(cfg.SLA.Priorities))
	for name, t := range cfg.SLA.Priorities {
		thresholds[models.IssuePriority(name)] = sla.Config{
			ResponseTimeHours:   t.ResponseHours,
			ResolutionTimeHours: t.ResolutionHours,
			EscalationTimeHours: t.EscalationHours,
		}
	}
	engine := sla.NewEngine(cal, thresholds, nil)

	policy := access.NewEngine(access.DefaultRoleTable())
	if cfg.Access.RolesFile != "" {
		roles, err := config.LoadRoles(cfg.Access.RolesFile)
		if err != nil {
			return nil, nil, err
		}
		policy = access.NewEngineFromRoles(roles)
	}

	return engine, policy, nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(configFlag)
}

func loadIssues(path string) ([]models.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issue export: %w", err)
	}
	var recs []models.IssueRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse issue export: %w", err)
	}
	return models.DecodeIssues(recs)
}

func loadEmployees(path string) (map[string]models.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read employee export: %w", err)
	}
	var employees []models.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("failed to parse employee export: %w", err)
	}
	byID := make(map[string]models.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}
	return byID, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
