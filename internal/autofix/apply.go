package autofix

import (
	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// Summary aggregates a batch fix run.
type Summary struct {
	Attempted      int              `json:"attempted"`
	Fixed          int              `json:"fixed"`
	RequiresManual int              `json:"requiresManual"`
	FixedFindings  []domain.Finding `json:"fixedFindings"`
	ManualFindings []domain.Finding `json:"manualFindings"`
}

// Apply attempts every finding against the session's datasets and returns a
// new snapshot with the fixes written, leaving the input untouched. Findings
// are processed in input order so fix attribution is reproducible. A finding
// addressing a missing dataset or an out-of-range row counts as requiring
// manual review rather than failing the batch. Callers must re-run validation
// afterward; Apply does not.
func Apply(datasets domain.Datasets, findings []domain.Finding) (domain.Datasets, Summary) {
	snapshot := domain.Datasets{}
	if datasets.Clients != nil {
		clone := datasets.Clients.Clone()
		snapshot.Clients = &clone
	}
	if datasets.Workers != nil {
		clone := datasets.Workers.Clone()
		snapshot.Workers = &clone
	}
	if datasets.Tasks != nil {
		clone := datasets.Tasks.Clone()
		snapshot.Tasks = &clone
	}

	summary := Summary{
		FixedFindings:  []domain.Finding{},
		ManualFindings: []domain.Finding{},
	}

	for _, finding := range findings {
		summary.Attempted++

		if !CanAutoFix(finding) {
			summary.RequiresManual++
			summary.ManualFindings = append(summary.ManualFindings, finding)
			continue
		}

		dataset := snapshot.Get(finding.DataType)
		if dataset == nil {
			summary.RequiresManual++
			summary.ManualFindings = append(summary.ManualFindings, finding)
			continue
		}
		row, ok := dataset.RowAt(finding.Row)
		if !ok {
			summary.RequiresManual++
			summary.ManualFindings = append(summary.ManualFindings, finding)
			continue
		}

		result := Fix(finding, row)
		if !result.Success {
			summary.RequiresManual++
			summary.ManualFindings = append(summary.ManualFindings, finding)
			continue
		}

		row[finding.Column] = result.FixedValue

		fixed := finding
		fixed.AutoFixValue = result.FixedValue
		fixed.FixReason = result.Reason
		summary.Fixed++
		summary.FixedFindings = append(summary.FixedFindings, fixed)
	}

	return snapshot, summary
}

// Recommendations partitions a finding list for display: what can be fixed
// automatically, what needs a manual edit, and what is a business decision.
// Business and skill findings always land in the third bucket.
type Recommendations struct {
	AutoFixable       []domain.Finding `json:"autoFixable"`
	ManualReview      []domain.Finding `json:"manualReview"`
	BusinessDecisions []domain.Finding `json:"businessDecisions"`
}

// Recommend classifies findings without touching any data.
func Recommend(findings []domain.Finding) Recommendations {
	rec := Recommendations{
		AutoFixable:       []domain.Finding{},
		ManualReview:      []domain.Finding{},
		BusinessDecisions: []domain.Finding{},
	}
	for _, finding := range findings {
		switch {
		case finding.Category == domain.CategoryBusiness || finding.Category == domain.CategorySkill:
			rec.BusinessDecisions = append(rec.BusinessDecisions, finding)
		case CanAutoFix(finding):
			rec.AutoFixable = append(rec.AutoFixable, finding)
		default:
			rec.ManualReview = append(rec.ManualReview, finding)
		}
	}
	return rec
}
