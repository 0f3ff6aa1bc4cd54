package validation

import (
	"fmt"
	"strings"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

const (
	weeklyHoursPerWorker = 40
	capacityBuffer       = 1.2
	maxTasksPerClient    = 10
	criticalShareLimit   = 0.2
)

// CheckBusinessRules runs the cross-dataset heuristics: high priority clients
// without tasks, overloaded clients, aggregate capacity versus demand, and
// priority inflation. All business findings are warnings; none are ever
// auto-fixable.
func CheckBusinessRules(datasets domain.Datasets) []domain.Finding {
	var findings []domain.Finding

	var clients, workers, tasks []domain.Row
	hasClients := datasets.Clients != nil
	hasWorkers := datasets.Workers != nil
	hasTasks := datasets.Tasks != nil
	if hasClients {
		clients = datasets.Clients.Rows
	}
	if hasWorkers {
		workers = datasets.Workers.Rows
	}
	if hasTasks {
		tasks = datasets.Tasks.Rows
	}

	if hasClients && hasTasks {
		findings = append(findings, checkClientTaskLoad(clients, tasks)...)
	}
	if hasWorkers && hasTasks {
		findings = append(findings, checkCapacity(workers, tasks)...)
	}
	if len(clients) > 0 {
		findings = append(findings, checkPriorityInflation(clients)...)
	}
	return findings
}

func checkClientTaskLoad(clients, tasks []domain.Row) []domain.Finding {
	taskCounts := make(map[string]int, len(clients))
	for _, task := range tasks {
		id := strings.ToLower(cellTrimmed(task["clientId"]))
		if id != "" {
			taskCounts[id]++
		}
	}

	var findings []domain.Finding
	for i, client := range clients {
		id := strings.ToLower(cellTrimmed(client["clientId"]))
		if id == "" {
			continue
		}
		count := taskCounts[id]
		priority := normalizePriority(client["priority"])

		if count == 0 && (priority == "high" || priority == "critical") {
			severity := domain.SeverityMedium
			if priority == "critical" {
				severity = domain.SeverityHigh
			}
			findings = append(findings, domain.Finding{
				Type:       domain.FindingWarning,
				Category:   domain.CategoryBusiness,
				Severity:   severity,
				DataType:   domain.EntityClients,
				Row:        i,
				Column:     "priority",
				Message:    fmt.Sprintf("%s priority client %q has no tasks", priority, cellTrimmed(client["clientId"])),
				Value:      client["priority"],
				Suggestion: "create tasks for this client or lower its priority",
			})
		}

		if count > maxTasksPerClient {
			findings = append(findings, domain.Finding{
				Type:     domain.FindingWarning,
				Category: domain.CategoryBusiness,
				Severity: domain.SeverityLow,
				DataType: domain.EntityClients,
				Row:      i,
				Column:   "clientId",
				Message:  fmt.Sprintf("client %q has %d tasks assigned", cellTrimmed(client["clientId"]), count),
				Value:    client["clientId"],
			})
		}
	}
	return findings
}

func checkCapacity(workers, tasks []domain.Row) []domain.Finding {
	var capacity float64
	for _, worker := range workers {
		if pct, ok := parseNumber(worker["availability"]); ok && pct > 0 {
			capacity += weeklyHoursPerWorker * pct / 100
		}
	}

	var demand float64
	for _, task := range tasks {
		if hours, ok := parseNumber(task["duration"]); ok && hours > 0 {
			demand += hours
		}
	}

	if demand <= capacity*capacityBuffer {
		return nil
	}
	return []domain.Finding{{
		Type:       domain.FindingWarning,
		Category:   domain.CategoryBusiness,
		Severity:   domain.SeverityHigh,
		DataType:   domain.EntityWorkers,
		Row:        0,
		Column:     "availability",
		Message:    fmt.Sprintf("task demand (%.0fh) exceeds worker capacity (%.0fh) even with a 20%% buffer", demand, capacity),
		Suggestion: "add workers, raise availability, or defer tasks",
	}}
}

func checkPriorityInflation(clients []domain.Row) []domain.Finding {
	critical := 0
	for _, client := range clients {
		if normalizePriority(client["priority"]) == "critical" {
			critical++
		}
	}
	share := float64(critical) / float64(len(clients))
	if share <= criticalShareLimit {
		return nil
	}
	return []domain.Finding{{
		Type:       domain.FindingWarning,
		Category:   domain.CategoryBusiness,
		Severity:   domain.SeverityMedium,
		DataType:   domain.EntityClients,
		Row:        0,
		Column:     "priority",
		Message:    fmt.Sprintf("%.0f%% of clients are marked critical; priorities lose meaning above %.0f%%", share*100, criticalShareLimit*100),
		Suggestion: "reserve critical for genuinely urgent clients",
	}}
}
