package autofix

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// Result is the per-finding outcome of an attempted fix. Fix functions return
// results instead of errors so batch processing continues past individual
// failures.
type Result struct {
	Success              bool   `json:"success"`
	FixedValue           any    `json:"fixedValue,omitempty"`
	Reason               string `json:"reason,omitempty"`
	RequiresManualReview bool   `json:"requiresManualReview,omitempty"`
}

var (
	nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)
	trailingDigits    = regexp.MustCompile(`(\d+)$`)
)

var booleanTokens = map[string]bool{
	"true":        true,
	"yes":         true,
	"1":           true,
	"active":      true,
	"available":   true,
	"false":       false,
	"no":          false,
	"0":           false,
	"inactive":    false,
	"unavailable": false,
}

// referenceDefaults supplies the substitute token used when a low severity
// reference finding points at an empty cell.
var referenceDefaults = map[string]string{
	"clientId": "default_client",
	"workerId": "default_worker",
	"taskId":   "default_task",
}

// Fix computes a concrete replacement value for a fixable finding against the
// row it addresses. The row is read-only here; Apply performs the write.
func Fix(finding domain.Finding, row domain.Row) Result {
	if !CanAutoFix(finding) {
		return Result{Reason: "finding requires manual review", RequiresManualReview: true}
	}

	switch finding.Category {
	case domain.CategoryDatatype:
		return fixDatatype(finding, row)
	case domain.CategoryRequired:
		return fixRequired(finding)
	case domain.CategoryDuplicate:
		return fixDuplicate(finding, row)
	case domain.CategoryReference:
		return fixReference(finding, row)
	}
	return Result{Reason: fmt.Sprintf("no fixer for category %s", finding.Category), RequiresManualReview: true}
}

func fixDatatype(finding domain.Finding, row domain.Row) Result {
	value := row[finding.Column]

	switch {
	case isBooleanColumn(finding.Column):
		token := strings.ToLower(strings.TrimSpace(asString(value)))
		if mapped, ok := booleanTokens[token]; ok {
			return Result{Success: true, FixedValue: mapped, Reason: "normalized boolean token"}
		}
		return Result{Reason: fmt.Sprintf("cannot interpret %q as boolean", token), RequiresManualReview: true}

	case finding.Column == "priority":
		token := strings.ToLower(strings.TrimSpace(asString(value)))
		if _, ok := priorityLevels[token]; ok {
			return Result{Success: true, FixedValue: token, Reason: "normalized priority to its canonical form"}
		}
		return Result{Success: true, FixedValue: safeDefaults["priority"], Reason: "replaced unrecognized priority with the default"}

	case isDateColumn(finding.Column):
		if finding.Type == domain.FindingWarning {
			// Past deadline: push it out thirty days from today.
			moved := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
			return Result{Success: true, FixedValue: moved, Reason: "moved past deadline 30 days out"}
		}
		if parsed, ok := parseLooseDate(asString(value)); ok {
			return Result{Success: true, FixedValue: parsed.Format("2006-01-02"), Reason: "reformatted date to ISO"}
		}
		return Result{Reason: fmt.Sprintf("cannot parse %q as a date", asString(value)), RequiresManualReview: true}

	default:
		// Numeric repair: strip everything that is not part of a number.
		stripped := nonNumericPattern.ReplaceAllString(asString(value), "")
		if parsed, err := strconv.ParseFloat(stripped, 64); err == nil {
			return Result{Success: true, FixedValue: parsed, Reason: "stripped non-numeric characters"}
		}
		if finding.Column != "rate" && finding.Column != "duration" {
			return Result{Success: true, FixedValue: 0, Reason: "defaulted unparseable numeric to 0"}
		}
		return Result{Reason: fmt.Sprintf("cannot recover a number from %q", asString(value)), RequiresManualReview: true}
	}
}

func fixRequired(finding domain.Finding) Result {
	value, ok := SafeDefault(finding.Column)
	if !ok {
		return Result{Reason: fmt.Sprintf("no safe default registered for %s", finding.Column), RequiresManualReview: true}
	}
	return Result{Success: true, FixedValue: value, Reason: fmt.Sprintf("filled %s with its safe default", finding.Column)}
}

func fixDuplicate(finding domain.Finding, row domain.Row) Result {
	value := row[finding.Column]

	if number, ok := asNumber(value); ok {
		return Result{Success: true, FixedValue: number + 1, Reason: "incremented duplicate numeric value"}
	}

	raw := strings.TrimSpace(asString(value))
	if raw == "" {
		return Result{Reason: "duplicate cell is empty", RequiresManualReview: true}
	}

	if strings.HasSuffix(finding.Column, "Id") || strings.HasSuffix(finding.Column, "ID") {
		if match := trailingDigits.FindString(raw); match != "" {
			n, _ := strconv.Atoi(match)
			renamed := strings.TrimSuffix(raw, match) + strconv.Itoa(n+1)
			return Result{Success: true, FixedValue: renamed, Reason: "incremented trailing id number"}
		}
		renamed := fmt.Sprintf("%s_%d", raw, finding.Row+1)
		return Result{Success: true, FixedValue: renamed, Reason: "appended row suffix to id"}
	}

	// Name-like column: derive a short suffix from the clock.
	suffix := time.Now().UnixMilli() % 1000
	return Result{Success: true, FixedValue: fmt.Sprintf("%s %d", raw, suffix), Reason: "appended numeric suffix to name"}
}

func fixReference(finding domain.Finding, row domain.Row) Result {
	raw := asString(row[finding.Column])
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		token, ok := referenceDefaults[finding.Column]
		if !ok {
			token = "default_" + strings.ToLower(finding.Column)
		}
		return Result{Success: true, FixedValue: token, Reason: "substituted default reference token"}
	}

	return Result{Success: true, FixedValue: trimmed, Reason: "trimmed surrounding whitespace"}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

var looseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func parseLooseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range looseDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
