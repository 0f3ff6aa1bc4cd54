package validation

import (
	"fmt"
	"strings"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// CheckReferences verifies that every task's clientId resolves to a client
// row. Matching is trimmed and case-insensitive to tolerate sloppy source
// files. Empty clientId cells are left to the required pass.
func CheckReferences(tasks, clients []domain.Row) []domain.Finding {
	known := make(map[string]struct{}, len(clients))
	for _, client := range clients {
		id := strings.ToLower(cellTrimmed(client["clientId"]))
		if id != "" {
			known[id] = struct{}{}
		}
	}

	var findings []domain.Finding
	for i, task := range tasks {
		raw := cellTrimmed(task["clientId"])
		if raw == "" {
			continue
		}
		if _, ok := known[strings.ToLower(raw)]; ok {
			continue
		}
		findings = append(findings, domain.Finding{
			Type:       domain.FindingError,
			Category:   domain.CategoryReference,
			Severity:   domain.SeverityHigh,
			DataType:   domain.EntityTasks,
			Row:        i,
			Column:     "clientId",
			Message:    fmt.Sprintf("task references unknown client %q", raw),
			Value:      task["clientId"],
			Suggestion: "upload the client record or correct the clientId",
		})
	}
	return findings
}
