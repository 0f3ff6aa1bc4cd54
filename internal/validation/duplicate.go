package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// CheckDuplicateIDs groups rows by their trimmed, lower-cased identity value
// and emits one high severity error per member of every group larger than one.
func CheckDuplicateIDs(rows []domain.Row, entityType domain.EntityType) []domain.Finding {
	idColumn, ok := idColumns[entityType]
	if !ok {
		return nil
	}

	groups := make(map[string][]int)
	for i, row := range rows {
		id := strings.ToLower(cellTrimmed(row[idColumn]))
		if id == "" {
			continue
		}
		groups[id] = append(groups[id], i)
	}

	// Sort group keys so finding order is deterministic across runs.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var findings []domain.Finding
	for _, key := range keys {
		indexes := groups[key]
		if len(indexes) < 2 {
			continue
		}
		for _, rowIdx := range indexes {
			findings = append(findings, domain.Finding{
				Type:        domain.FindingError,
				Category:    domain.CategoryDuplicate,
				Severity:    domain.SeverityHigh,
				DataType:    entityType,
				Row:         rowIdx,
				Column:      idColumn,
				Message:     fmt.Sprintf("duplicate %s %q shared by %d rows", idColumn, key, len(indexes)),
				Value:       rows[rowIdx][idColumn],
				Suggestion:  fmt.Sprintf("assign a unique %s to each row", idColumn),
				AutoFixable: true,
				FixType:     "rename",
			})
		}
	}
	return findings
}
