package validation

import (
	"fmt"
	"time"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

const (
	maxReasonableRate     = 1000
	maxReasonableDuration = 168 // one week of hours
)

// CheckDatatypes runs the dataset-specific numeric and enum checks. Invalid
// formats are medium severity errors; values that parse but fall outside the
// expected range are warnings.
func CheckDatatypes(rows []domain.Row, entityType domain.EntityType) []domain.Finding {
	switch entityType {
	case domain.EntityClients:
		return checkClientDatatypes(rows)
	case domain.EntityWorkers:
		return checkWorkerDatatypes(rows)
	case domain.EntityTasks:
		return checkTaskDatatypes(rows)
	}
	return nil
}

func checkClientDatatypes(rows []domain.Row) []domain.Finding {
	var findings []domain.Finding
	for i, row := range rows {
		value, present := row["priority"]
		if !present || isEmpty(value) {
			continue
		}
		priority := normalizePriority(value)
		if _, ok := validPriorities[priority]; !ok {
			findings = append(findings, domain.Finding{
				Type:       domain.FindingError,
				Category:   domain.CategoryDatatype,
				Severity:   domain.SeverityMedium,
				DataType:   domain.EntityClients,
				Row:        i,
				Column:     "priority",
				Message:    fmt.Sprintf("priority %q is not one of low, medium, high, critical", cellTrimmed(value)),
				Value:      value,
				Suggestion: "use one of: low, medium, high, critical",
			})
		}
	}
	return findings
}

func checkWorkerDatatypes(rows []domain.Row) []domain.Finding {
	var findings []domain.Finding
	for i, row := range rows {
		if value, present := row["rate"]; present && !isEmpty(value) {
			rate, ok := parseNumber(value)
			switch {
			case !ok:
				findings = append(findings, domain.Finding{
					Type:     domain.FindingError,
					Category: domain.CategoryDatatype,
					Severity: domain.SeverityMedium,
					DataType: domain.EntityWorkers,
					Row:      i,
					Column:   "rate",
					Message:  fmt.Sprintf("rate %q is not a number", cellTrimmed(value)),
					Value:    value,
				})
			case rate < 0:
				findings = append(findings, domain.Finding{
					Type:     domain.FindingError,
					Category: domain.CategoryDatatype,
					Severity: domain.SeverityMedium,
					DataType: domain.EntityWorkers,
					Row:      i,
					Column:   "rate",
					Message:  fmt.Sprintf("rate %v is negative", rate),
					Value:    value,
				})
			case rate > maxReasonableRate:
				findings = append(findings, domain.Finding{
					Type:       domain.FindingWarning,
					Category:   domain.CategoryDatatype,
					Severity:   domain.SeverityLow,
					DataType:   domain.EntityWorkers,
					Row:        i,
					Column:     "rate",
					Message:    fmt.Sprintf("rate %v is unusually high", rate),
					Value:      value,
					Suggestion: "confirm the rate is per hour, not per day",
				})
			}
		}

		if value, present := row["availability"]; present && !isEmpty(value) {
			pct, ok := parseNumber(value)
			if !ok || pct < 0 || pct > 100 {
				findings = append(findings, domain.Finding{
					Type:       domain.FindingError,
					Category:   domain.CategoryDatatype,
					Severity:   domain.SeverityMedium,
					DataType:   domain.EntityWorkers,
					Row:        i,
					Column:     "availability",
					Message:    fmt.Sprintf("availability %q is not a 0-100 percentage", cellTrimmed(value)),
					Value:      value,
					Suggestion: "express availability as a percentage between 0 and 100",
				})
			}
		}
	}
	return findings
}

func checkTaskDatatypes(rows []domain.Row) []domain.Finding {
	var findings []domain.Finding
	for i, row := range rows {
		value, present := row["duration"]
		if !present || isEmpty(value) {
			continue
		}
		duration, ok := parseNumber(value)
		switch {
		case !ok, duration <= 0:
			findings = append(findings, domain.Finding{
				Type:     domain.FindingError,
				Category: domain.CategoryDatatype,
				Severity: domain.SeverityMedium,
				DataType: domain.EntityTasks,
				Row:      i,
				Column:   "duration",
				Message:  fmt.Sprintf("duration %q is not a positive number of hours", cellTrimmed(value)),
				Value:    value,
			})
		case duration > maxReasonableDuration:
			findings = append(findings, domain.Finding{
				Type:       domain.FindingWarning,
				Category:   domain.CategoryDatatype,
				Severity:   domain.SeverityMedium,
				DataType:   domain.EntityTasks,
				Row:        i,
				Column:     "duration",
				Message:    fmt.Sprintf("very long task duration: %v hours exceeds one week", duration),
				Value:      value,
				Suggestion: "split the task or confirm the estimate",
			})
		}
	}
	return findings
}

// CheckDeadlines validates task deadlines parse as dates and warns on
// deadlines already in the past.
func CheckDeadlines(tasks []domain.Row) []domain.Finding {
	return checkDeadlinesAt(tasks, time.Now())
}

func checkDeadlinesAt(tasks []domain.Row, now time.Time) []domain.Finding {
	var findings []domain.Finding
	today := now.Truncate(24 * time.Hour)
	for i, row := range tasks {
		value, present := row["deadline"]
		if !present || isEmpty(value) {
			continue
		}
		deadline, ok := parseDate(value)
		if !ok {
			findings = append(findings, domain.Finding{
				Type:       domain.FindingError,
				Category:   domain.CategoryDatatype,
				Severity:   domain.SeverityMedium,
				DataType:   domain.EntityTasks,
				Row:        i,
				Column:     "deadline",
				Message:    fmt.Sprintf("deadline %q is not a valid date", cellTrimmed(value)),
				Value:      value,
				Suggestion: "use an ISO date such as 2026-01-31",
			})
			continue
		}
		if deadline.Before(today) {
			findings = append(findings, domain.Finding{
				Type:       domain.FindingWarning,
				Category:   domain.CategoryDatatype,
				Severity:   domain.SeverityLow,
				DataType:   domain.EntityTasks,
				Row:        i,
				Column:     "deadline",
				Message:    fmt.Sprintf("deadline %s is in the past", deadline.Format("2006-01-02")),
				Value:      value,
				Suggestion: "move the deadline into the future",
			})
		}
	}
	return findings
}
