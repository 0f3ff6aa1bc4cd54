package autofix

import (
	"strings"
	"testing"
	"time"

	"github.com/rohittcodes/data-alchemist/internal/domain"
	"github.com/rohittcodes/data-alchemist/internal/validation"
)

func finding(category domain.Category, severity domain.Severity, findingType domain.FindingType, column string) domain.Finding {
	return domain.Finding{
		Type:     findingType,
		Category: category,
		Severity: severity,
		DataType: domain.EntityWorkers,
		Row:      0,
		Column:   column,
	}
}

func TestBusinessAndSkillNeverFixable(t *testing.T) {
	severities := []domain.Severity{domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh}
	for _, category := range []domain.Category{domain.CategoryBusiness, domain.CategorySkill} {
		for _, severity := range severities {
			f := finding(category, severity, domain.FindingWarning, "priority")
			f.AutoFixable = true // must be ignored
			if CanAutoFix(f) {
				t.Fatalf("%s/%s must never be auto-fixable", category, severity)
			}
		}
	}
}

func TestRequiredUnsafeColumnsNotFixable(t *testing.T) {
	for _, column := range []string{"duration", "rate", "deadline", "clientId", "workerId", "taskId", "email", "phone", "address"} {
		f := finding(domain.CategoryRequired, domain.SeverityHigh, domain.FindingError, column)
		if CanAutoFix(f) {
			t.Fatalf("required %s must not be auto-fixable", column)
		}
	}
}

func TestRequiredSafeColumnsFixable(t *testing.T) {
	for _, column := range []string{"priority", "availability", "status", "skills", "description", "location", "company"} {
		f := finding(domain.CategoryRequired, domain.SeverityHigh, domain.FindingError, column)
		if !CanAutoFix(f) {
			t.Fatalf("required %s should be auto-fixable", column)
		}
	}
}

func TestDatatypeDecisions(t *testing.T) {
	longDuration := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingWarning, "duration")
	if CanAutoFix(longDuration) {
		t.Fatalf("long duration warnings require business judgment")
	}

	availability := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "availability")
	if CanAutoFix(availability) {
		t.Fatalf("availability format errors must not be auto-fixed")
	}

	pastDeadline := finding(domain.CategoryDatatype, domain.SeverityLow, domain.FindingWarning, "deadline")
	if !CanAutoFix(pastDeadline) {
		t.Fatalf("past deadlines are fixable")
	}

	badRate := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate")
	if !CanAutoFix(badRate) {
		t.Fatalf("numeric formatting issues are fixable")
	}
}

func TestReferenceSeverityGate(t *testing.T) {
	high := finding(domain.CategoryReference, domain.SeverityHigh, domain.FindingError, "clientId")
	high.AutoFixable = true
	if CanAutoFix(high) {
		t.Fatalf("high severity reference findings must not be auto-fixed")
	}

	low := finding(domain.CategoryReference, domain.SeverityLow, domain.FindingWarning, "clientId")
	if !CanAutoFix(low) {
		t.Fatalf("low severity reference findings are fixable")
	}
}

func TestFixRateUnrecoverable(t *testing.T) {
	f := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate")
	result := Fix(f, domain.Row{"rate": "abc"})
	if result.Success {
		t.Fatalf("rate must not default to 0, got %+v", result)
	}
	if !result.RequiresManualReview {
		t.Fatalf("unrecoverable rate should require manual review")
	}
}

func TestFixNumericStripsCharacters(t *testing.T) {
	f := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate")
	result := Fix(f, domain.Row{"rate": "$45.50/hr"})
	if !result.Success {
		t.Fatalf("expected fix to succeed: %+v", result)
	}
	if result.FixedValue != 45.50 {
		t.Fatalf("expected 45.50, got %v", result.FixedValue)
	}
}

func TestFixPastDeadlineMovesForward(t *testing.T) {
	f := finding(domain.CategoryDatatype, domain.SeverityLow, domain.FindingWarning, "deadline")
	result := Fix(f, domain.Row{"deadline": "2020-01-01"})
	if !result.Success {
		t.Fatalf("expected fix to succeed: %+v", result)
	}
	fixed, err := time.Parse("2006-01-02", result.FixedValue.(string))
	if err != nil {
		t.Fatalf("fixed deadline is not an ISO date: %v", err)
	}
	if !fixed.After(time.Now()) {
		t.Fatalf("fixed deadline %v should be in the future", fixed)
	}
}

func TestFixRequiredUsesSafeDefault(t *testing.T) {
	f := finding(domain.CategoryRequired, domain.SeverityHigh, domain.FindingError, "priority")
	result := Fix(f, domain.Row{})
	if !result.Success || result.FixedValue != "medium" {
		t.Fatalf("expected priority default medium, got %+v", result)
	}

	f = finding(domain.CategoryRequired, domain.SeverityHigh, domain.FindingError, "description")
	result = Fix(f, domain.Row{})
	if !result.Success || result.FixedValue != "No description provided" {
		t.Fatalf("unexpected description default: %+v", result)
	}
}

func TestFixDuplicateIDIncrementsTrailingDigits(t *testing.T) {
	f := finding(domain.CategoryDuplicate, domain.SeverityMedium, domain.FindingError, "workerId")
	result := Fix(f, domain.Row{"workerId": "W7"})
	if !result.Success || result.FixedValue != "W8" {
		t.Fatalf("expected W8, got %+v", result)
	}
}

func TestFixDuplicateIDWithoutDigitsAppendsRowSuffix(t *testing.T) {
	f := finding(domain.CategoryDuplicate, domain.SeverityMedium, domain.FindingError, "workerId")
	f.Row = 4
	result := Fix(f, domain.Row{"workerId": "ANN"})
	if !result.Success || result.FixedValue != "ANN_5" {
		t.Fatalf("expected ANN_5, got %+v", result)
	}
}

func TestFixDuplicateNameGetsSuffix(t *testing.T) {
	f := finding(domain.CategoryDuplicate, domain.SeverityMedium, domain.FindingError, "clientName")
	result := Fix(f, domain.Row{"clientName": "Acme"})
	if !result.Success {
		t.Fatalf("expected fix to succeed: %+v", result)
	}
	renamed := result.FixedValue.(string)
	if renamed == "Acme" || !strings.HasPrefix(renamed, "Acme ") {
		t.Fatalf("expected suffixed name, got %q", renamed)
	}
}

func TestFixReferenceEmptySubstitutesToken(t *testing.T) {
	f := finding(domain.CategoryReference, domain.SeverityLow, domain.FindingWarning, "clientId")
	result := Fix(f, domain.Row{"clientId": "  "})
	if !result.Success || result.FixedValue != "default_client" {
		t.Fatalf("expected default_client, got %+v", result)
	}
}

func TestApplyCopyOnWrite(t *testing.T) {
	rows := []domain.Row{{"workerId": "W1", "rate": "$50"}}
	ds := domain.NewDataset(domain.EntityWorkers, []string{"workerId", "rate"}, rows)
	input := domain.Datasets{Workers: &ds}

	f := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate")
	fixed, summary := Apply(input, []domain.Finding{f})

	if summary.Attempted != 1 || summary.Fixed != 1 || summary.RequiresManual != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if fixed.Workers.Rows[0]["rate"] != 50.0 {
		t.Fatalf("expected fixed rate 50, got %v", fixed.Workers.Rows[0]["rate"])
	}
	if input.Workers.Rows[0]["rate"] != "$50" {
		t.Fatalf("input dataset must not be mutated, got %v", input.Workers.Rows[0]["rate"])
	}
	if summary.FixedFindings[0].AutoFixValue != 50.0 {
		t.Fatalf("fixed finding should carry the applied value: %+v", summary.FixedFindings[0])
	}
}

func TestApplyMissingRowRequiresManual(t *testing.T) {
	ds := domain.NewDataset(domain.EntityWorkers, nil, []domain.Row{})
	input := domain.Datasets{Workers: &ds}

	f := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate")
	f.Row = 5
	_, summary := Apply(input, []domain.Finding{f})

	if summary.RequiresManual != 1 || summary.Fixed != 0 {
		t.Fatalf("out-of-range row must count as manual: %+v", summary)
	}
}

func TestApplyMissingDatasetRequiresManual(t *testing.T) {
	f := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate")
	_, summary := Apply(domain.Datasets{}, []domain.Finding{f})
	if summary.RequiresManual != 1 {
		t.Fatalf("missing dataset must count as manual: %+v", summary)
	}
}

func TestRecommendRoutesBusinessDecisions(t *testing.T) {
	findings := []domain.Finding{
		finding(domain.CategoryBusiness, domain.SeverityHigh, domain.FindingWarning, "priority"),
		finding(domain.CategorySkill, domain.SeverityMedium, domain.FindingWarning, "skills"),
		finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "rate"),
		finding(domain.CategoryRequired, domain.SeverityHigh, domain.FindingError, "email"),
	}

	rec := Recommend(findings)
	if len(rec.BusinessDecisions) != 2 {
		t.Fatalf("expected 2 business decisions, got %d", len(rec.BusinessDecisions))
	}
	if len(rec.AutoFixable) != 1 {
		t.Fatalf("expected 1 auto-fixable, got %d", len(rec.AutoFixable))
	}
	if len(rec.ManualReview) != 1 {
		t.Fatalf("expected 1 manual review, got %d", len(rec.ManualReview))
	}
}

func TestFixPriorityReplacesInvalidEnumValue(t *testing.T) {
	f := finding(domain.CategoryDatatype, domain.SeverityMedium, domain.FindingError, "priority")
	f.DataType = domain.EntityClients

	result := Fix(f, domain.Row{"priority": "urgent"})
	if !result.Success || result.FixedValue != "medium" {
		t.Fatalf("invalid priority should fall back to medium, got %+v", result)
	}

	result = Fix(f, domain.Row{"priority": " Critical "})
	if !result.Success || result.FixedValue != "critical" {
		t.Fatalf("recognizable priority should normalize, got %+v", result)
	}
}

func TestApplyPriorityFixConverges(t *testing.T) {
	rows := []domain.Row{{
		"clientId":     "C1",
		"clientName":   "Acme",
		"requirements": "go",
		"priority":     "urgent",
	}}
	ds := domain.NewDataset(domain.EntityClients, nil, rows)
	input := domain.Datasets{Clients: &ds}

	summary := validation.Run(input)
	fixed, fixSummary := Apply(input, summary.AllErrors)
	if fixSummary.Fixed != 1 {
		t.Fatalf("expected the priority finding to be fixed: %+v", fixSummary)
	}
	if fixed.Clients.Rows[0]["priority"] != "medium" {
		t.Fatalf("expected priority medium, got %v", fixed.Clients.Rows[0]["priority"])
	}

	// The written value must pass revalidation, not get flagged again.
	for _, f := range validation.Run(fixed).AllErrors {
		if f.Column == "priority" && f.Category == domain.CategoryDatatype {
			t.Fatalf("priority fix did not converge: %+v", f)
		}
	}
}
