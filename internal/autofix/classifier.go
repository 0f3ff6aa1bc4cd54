// Package autofix decides which validation findings can be repaired
// mechanically and computes the replacement values for those that can.
package autofix

import (
	"strings"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// safeDefaults registers the columns a missing value may be populated for
// without human judgment, together with the value used. Identity columns,
// critical numerics (rate, duration), deadlines, and contact fields are
// deliberately absent: those must never be invented.
var safeDefaults = map[string]any{
	"priority":     "medium",
	"availability": "available",
	"status":       "pending",
	"requirements": "General",
	"skills":       "General",
	"description":  "No description provided",
	"location":     "Remote",
	"company":      "TBD",
	"department":   "General",
	"active":       true,
	"available":    true,
}

// unsafeColumns are excluded from defaulting even if someone later adds them
// to safeDefaults by mistake. The deny list wins.
var unsafeColumns = map[string]struct{}{
	"duration": {},
	"rate":     {},
	"deadline": {},
	"email":    {},
	"phone":    {},
	"address":  {},
}

var numericColumns = map[string]struct{}{
	"rate":         {},
	"duration":     {},
	"availability": {},
}

var booleanColumns = map[string]struct{}{
	"active":    {},
	"available": {},
}

var dateColumns = map[string]struct{}{
	"deadline":  {},
	"startDate": {},
	"endDate":   {},
}

// priorityLevels is the closed client priority enum; fixer normalization must
// only ever write one of these values.
var priorityLevels = map[string]struct{}{
	"low":      {},
	"medium":   {},
	"high":     {},
	"critical": {},
}

// SafeDefault returns the registered default value for a column, if any.
// Identity columns (any *Id) and the deny list never have one.
func SafeDefault(column string) (any, bool) {
	if strings.HasSuffix(column, "Id") || strings.HasSuffix(column, "ID") {
		return nil, false
	}
	if _, denied := unsafeColumns[column]; denied {
		return nil, false
	}
	value, ok := safeDefaults[column]
	return value, ok
}

// CanAutoFix is the decision table determining whether a finding is safe to
// repair mechanically. Business and skill findings always require human
// judgment regardless of anything else on the finding.
func CanAutoFix(finding domain.Finding) bool {
	switch finding.Category {
	case domain.CategoryBusiness, domain.CategorySkill:
		return false

	case domain.CategoryDatatype:
		switch {
		case finding.Column == "duration" && finding.Type == domain.FindingWarning:
			// Very long durations are a business call, not a typo.
			return false
		case finding.Column == "availability":
			// A percentage cannot be safely inferred from free text.
			return false
		case finding.Column == "deadline" && finding.Type == domain.FindingWarning:
			return true
		case isNumericColumn(finding.Column), isBooleanColumn(finding.Column), isDateColumn(finding.Column):
			return true
		case finding.Severity != domain.SeverityHigh:
			return true
		}
		return finding.AutoFixable

	case domain.CategoryRequired:
		_, ok := SafeDefault(finding.Column)
		return ok

	case domain.CategoryDuplicate:
		if finding.Severity == domain.SeverityLow || finding.Severity == domain.SeverityMedium {
			return true
		}
		return finding.AutoFixable

	case domain.CategoryReference:
		if finding.Severity == domain.SeverityHigh {
			return false
		}
		return finding.Severity == domain.SeverityLow
	}

	return finding.AutoFixable
}

func isNumericColumn(column string) bool {
	_, ok := numericColumns[column]
	return ok
}

func isBooleanColumn(column string) bool {
	_, ok := booleanColumns[column]
	return ok
}

func isDateColumn(column string) bool {
	_, ok := dateColumns[column]
	return ok
}
