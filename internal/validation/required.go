package validation

import (
	"fmt"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// CheckRequiredFields emits a high severity error for every row missing a
// value in one of its dataset's required columns.
func CheckRequiredFields(rows []domain.Row, entityType domain.EntityType) []domain.Finding {
	columns, ok := requiredColumns[entityType]
	if !ok {
		return nil
	}

	var findings []domain.Finding
	for i, row := range rows {
		for _, column := range columns {
			value, present := row[column]
			if present && !isEmpty(value) {
				continue
			}
			findings = append(findings, domain.Finding{
				Type:       domain.FindingError,
				Category:   domain.CategoryRequired,
				Severity:   domain.SeverityHigh,
				DataType:   entityType,
				Row:        i,
				Column:     column,
				Message:    fmt.Sprintf("required field %s is missing", column),
				Value:      value,
				Suggestion: fmt.Sprintf("provide a value for %s", column),
			})
		}
	}
	return findings
}
