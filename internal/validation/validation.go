// Package validation implements the structural and business validation passes
// run over normalized client/worker/task datasets. Every pass is a pure
// function over row slices: findings out, inputs untouched.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// idColumns names the identity column checked by the duplicate pass for each
// dataset.
var idColumns = map[domain.EntityType]string{
	domain.EntityClients: "clientId",
	domain.EntityWorkers: "workerId",
	domain.EntityTasks:   "taskId",
}

// requiredColumns lists the columns every row of a dataset must populate.
var requiredColumns = map[domain.EntityType][]string{
	domain.EntityClients: {"clientId", "clientName", "requirements", "priority"},
	domain.EntityWorkers: {"workerId", "name", "skills", "availability", "rate"},
	domain.EntityTasks:   {"taskId", "clientId", "duration", "skills", "deadline"},
}

// validPriorities is the canonical priority scheme for clients. The string
// enum is applied uniformly across the required, datatype, and business
// passes.
var validPriorities = map[string]struct{}{
	"low":      {},
	"medium":   {},
	"high":     {},
	"critical": {},
}

// Run executes every validation pass in a fixed order and aggregates the
// findings. Any subset of the three datasets may be absent; passes that need
// a missing dataset are skipped. Run is idempotent and side-effect free, so
// callers re-invoke it after every mutation to obtain a fresh summary.
func Run(datasets domain.Datasets) domain.Summary {
	var findings []domain.Finding

	for _, entityType := range domain.EntityTypes() {
		if ds := datasets.Get(entityType); ds != nil {
			findings = append(findings, CheckDuplicateIDs(ds.Rows, entityType)...)
		}
	}
	for _, entityType := range domain.EntityTypes() {
		if ds := datasets.Get(entityType); ds != nil {
			findings = append(findings, CheckRequiredFields(ds.Rows, entityType)...)
		}
	}
	if datasets.Tasks != nil && datasets.Clients != nil {
		findings = append(findings, CheckReferences(datasets.Tasks.Rows, datasets.Clients.Rows)...)
	}
	if datasets.Tasks != nil && datasets.Workers != nil {
		findings = append(findings, CheckSkillCoverage(datasets.Tasks.Rows, datasets.Workers.Rows)...)
		findings = append(findings, CheckWorkerUtilization(datasets.Workers.Rows, datasets.Tasks.Rows)...)
	}
	for _, entityType := range domain.EntityTypes() {
		if ds := datasets.Get(entityType); ds != nil {
			findings = append(findings, CheckDatatypes(ds.Rows, entityType)...)
		}
	}
	if datasets.Tasks != nil {
		findings = append(findings, CheckDeadlines(datasets.Tasks.Rows)...)
	}
	findings = append(findings, CheckBusinessRules(datasets)...)

	return domain.NewSummary(findings)
}

// cellString renders a cell value for comparison. Nil renders as empty.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellTrimmed is cellString with surrounding whitespace removed.
func cellTrimmed(value any) string {
	return strings.TrimSpace(cellString(value))
}

// isEmpty reports whether a cell is nil or whitespace-only.
func isEmpty(value any) bool {
	return cellTrimmed(value) == ""
}

// parseNumber parses a cell as a float64, accepting native numeric types and
// numeric strings.
func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	f, err := strconv.ParseFloat(cellTrimmed(value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// parseDate parses a cell as a calendar date using the accepted layouts.
func parseDate(value any) (time.Time, bool) {
	raw := cellTrimmed(value)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizePriority canonicalizes a priority cell for enum comparison.
func normalizePriority(value any) string {
	return strings.ToLower(cellTrimmed(value))
}

// splitSkills tokenizes a comma or semicolon delimited skill list, trimming
// and lower-casing each token.
func splitSkills(value any) []string {
	raw := cellTrimmed(value)
	if raw == "" {
		return nil
	}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	skills := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			skills = append(skills, token)
		}
	}
	return skills
}
