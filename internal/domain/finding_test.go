package domain

import "testing"

func TestNewSummaryCounts(t *testing.T) {
	findings := []Finding{
		{Type: FindingError, Category: CategoryDuplicate, Severity: SeverityHigh},
		{Type: FindingError, Category: CategoryRequired, Severity: SeverityMedium},
		{Type: FindingWarning, Category: CategoryBusiness, Severity: SeverityHigh},
		{Type: FindingWarning, Category: CategorySkill, Severity: SeverityLow},
	}

	summary := NewSummary(findings)
	if summary.TotalErrors != 2 || summary.TotalWarnings != 2 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.TotalErrors+summary.TotalWarnings != len(summary.AllErrors) {
		t.Fatalf("count invariant broken")
	}

	total := 0
	for _, count := range summary.ErrorsByCategory {
		total += count
	}
	if total != len(findings) {
		t.Fatalf("category counts sum to %d, want %d", total, len(findings))
	}

	// High severity warnings are not critical; only high severity errors are.
	if len(summary.CriticalIssues) != 1 || summary.CriticalIssues[0].Category != CategoryDuplicate {
		t.Fatalf("unexpected critical subset: %+v", summary.CriticalIssues)
	}
}

func TestNewSummaryEmpty(t *testing.T) {
	summary := NewSummary(nil)
	if summary.AllErrors == nil || summary.CriticalIssues == nil {
		t.Fatalf("summary slices must be non-nil for json encoding")
	}
	if summary.HasBlockingIssues() {
		t.Fatalf("empty summary has no blocking issues")
	}
}

func TestDatasetCloneIsDeep(t *testing.T) {
	ds := NewDataset(EntityClients, []string{"clientId"}, []Row{{"clientId": "C1"}})
	clone := ds.Clone()
	clone.Rows[0]["clientId"] = "changed"
	if ds.Rows[0]["clientId"] != "C1" {
		t.Fatalf("clone shares row storage with original")
	}
}

func TestDatasetRowAt(t *testing.T) {
	ds := NewDataset(EntityClients, nil, []Row{{"clientId": "C1"}})
	if _, ok := ds.RowAt(-1); ok {
		t.Fatalf("negative index must not resolve")
	}
	if _, ok := ds.RowAt(1); ok {
		t.Fatalf("out-of-range index must not resolve")
	}
	row, ok := ds.RowAt(0)
	if !ok || row["clientId"] != "C1" {
		t.Fatalf("expected row 0, got %v", row)
	}
}

func TestDatasetsSetRejectsUnknownType(t *testing.T) {
	var d Datasets
	if err := d.Set(Dataset{Type: "machines"}); err == nil {
		t.Fatalf("expected error for unknown entity type")
	}
}
