package domain

// FindingType distinguishes blocking errors from advisory warnings.
type FindingType string

const (
	FindingError   FindingType = "error"
	FindingWarning FindingType = "warning"
)

// Category groups findings by the validation pass that produced them. The set
// is closed; the auto-fix decision table switches over it exhaustively.
type Category string

const (
	CategoryDuplicate Category = "duplicate"
	CategoryRequired  Category = "required"
	CategoryReference Category = "reference"
	CategorySkill     Category = "skill"
	CategoryDatatype  Category = "datatype"
	CategoryBusiness  Category = "business"
)

// Categories lists every finding category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryDuplicate,
		CategoryRequired,
		CategoryReference,
		CategorySkill,
		CategoryDatatype,
		CategoryBusiness,
	}
}

// Severity ranks how urgently a finding needs attention.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Finding is one structured validation result about a single row/column of a
// dataset snapshot. Findings are immutable facts: every validation run
// regenerates the full list from scratch.
type Finding struct {
	Type       FindingType `json:"type"`
	Category   Category    `json:"category"`
	Severity   Severity    `json:"severity"`
	DataType   EntityType  `json:"dataType"`
	Row        int         `json:"row"`
	Column     string      `json:"column"`
	Message    string      `json:"message"`
	Value      any         `json:"value,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`

	AutoFixable  bool   `json:"autoFixable"`
	FixType      string `json:"fixType,omitempty"`
	FixReason    string `json:"fixReason,omitempty"`
	AutoFixValue any    `json:"autoFixValue,omitempty"`
}

// Summary aggregates one validation run over a session's datasets.
type Summary struct {
	TotalErrors      int              `json:"totalErrors"`
	TotalWarnings    int              `json:"totalWarnings"`
	ErrorsByCategory map[Category]int `json:"errorsByCategory"`
	CriticalIssues   []Finding        `json:"criticalIssues"`
	AllErrors        []Finding        `json:"allErrors"`
}

// NewSummary aggregates a finding list. Invariants: TotalErrors+TotalWarnings
// equals len(findings), and the per-category counts sum to len(findings).
func NewSummary(findings []Finding) Summary {
	summary := Summary{
		ErrorsByCategory: make(map[Category]int),
		CriticalIssues:   []Finding{},
		AllErrors:        findings,
	}
	if summary.AllErrors == nil {
		summary.AllErrors = []Finding{}
	}
	for _, finding := range findings {
		switch finding.Type {
		case FindingWarning:
			summary.TotalWarnings++
		default:
			summary.TotalErrors++
		}
		summary.ErrorsByCategory[finding.Category]++
		if finding.Type == FindingError && finding.Severity == SeverityHigh {
			summary.CriticalIssues = append(summary.CriticalIssues, finding)
		}
	}
	return summary
}

// HasBlockingIssues reports whether any high severity error is present.
func (s Summary) HasBlockingIssues() bool {
	return len(s.CriticalIssues) > 0
}
