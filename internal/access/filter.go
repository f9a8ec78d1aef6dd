package access

import "github.com/nivaran-io/nivaran-ce/internal/models"

// FilterEmployees keeps employees whose city the scope allows.
func FilterEmployees(employees []models.Employee, scope CityScope) []models.Employee {
	if !scope.Restricted {
		return employees
	}
	kept := make([]models.Employee, 0, len(employees))
	for _, emp := range employees {
		if scope.Allows(emp.City) {
			kept = append(kept, emp)
		}
	}
	return kept
}

// FilterUsers keeps dashboard users whose city the scope allows.
func FilterUsers(users []models.DashboardUser, scope CityScope) []models.DashboardUser {
	if !scope.Restricted {
		return users
	}
	kept := make([]models.DashboardUser, 0, len(users))
	for _, u := range users {
		if scope.Allows(u.City) {
			kept = append(kept, u)
		}
	}
	return kept
}

// FilterIssues keeps issues whose owning employee's city the scope allows.
// An issue whose employee is not in the map is dropped under a restricted
// scope: unresolvable ownership is out-of-scope, not visible-by-default.
func FilterIssues(issues []models.Issue, employeesByID map[string]models.Employee, scope CityScope) []models.Issue {
	if !scope.Restricted {
		return issues
	}
	kept := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		emp, ok := employeesByID[issue.EmployeeID]
		if !ok {
			continue
		}
		if scope.Allows(emp.City) {
			kept = append(kept, issue)
		}
	}
	return kept
}
