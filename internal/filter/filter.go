// Package filter applies structured filter specifications, built by the UI or
// translated from natural language, to normalized row datasets.
package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// ErrUnknownDataType is returned when a filter targets an entity type that is
// not one of clients, workers, or tasks.
var ErrUnknownDataType = errors.New("unknown data type")

// ErrDatasetNotLoaded is returned when the targeted dataset has not been
// uploaded into the session yet.
var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// Apply evaluates the filter's conditions as a conjunction over the targeted
// dataset and returns the matching rows in their original order. Unresolvable
// fields never error; a condition that cannot find its field simply excludes
// the row. A filter with zero conditions returns every row.
func Apply(datasets domain.Datasets, spec domain.DataFilter) (domain.FilteredResults, error) {
	if !spec.DataType.Valid() {
		return domain.FilteredResults{}, fmt.Errorf("%w: %q", ErrUnknownDataType, spec.DataType)
	}
	dataset := datasets.Get(spec.DataType)
	if dataset == nil {
		return domain.FilteredResults{}, fmt.Errorf("%w: %s", ErrDatasetNotLoaded, spec.DataType)
	}

	results := domain.FilteredResults{
		DataType: spec.DataType,
		Rows:     []domain.Row{},
	}
	for _, row := range dataset.Rows {
		if matchesAll(row, spec) {
			results.Rows = append(results.Rows, row)
		}
	}
	results.Total = len(results.Rows)
	return results, nil
}

func matchesAll(row domain.Row, spec domain.DataFilter) bool {
	for _, condition := range spec.Conditions {
		value, ok := resolveField(row, spec.DataType, condition.Field)
		if !ok {
			return false
		}
		if !evaluate(value, condition) {
			return false
		}
	}
	return true
}

// resolveField finds a condition's field on the row in three tiers: exact key,
// synonym-table variants for the entity, then a case-insensitive scan of the
// row's actual keys.
func resolveField(row domain.Row, entityType domain.EntityType, field string) (any, bool) {
	if value, ok := row[field]; ok {
		return value, true
	}

	if variants := lookupVariants(entityType, field); variants != nil {
		for _, variant := range variants {
			if value, ok := row[variant]; ok {
				return value, true
			}
			for key, value := range row {
				if strings.EqualFold(key, variant) {
					return value, true
				}
			}
		}
	}

	for key, value := range row {
		if strings.EqualFold(key, field) {
			return value, true
		}
	}
	return nil, false
}

// lookupVariants returns the accepted spellings for the conceptual field the
// query named: exact concept match first, then the prebuilt case-insensitive
// index over concept names and member variants.
func lookupVariants(entityType domain.EntityType, field string) []string {
	groups := fieldSynonyms[entityType]
	if groups == nil {
		return nil
	}
	if variants, ok := groups[field]; ok {
		return variants
	}
	return variantIndex[entityType][strings.ToLower(field)]
}

func evaluate(value any, condition domain.FilterCondition) bool {
	switch condition.Operator {
	case domain.OperatorEquals:
		return normalize(value) == normalize(condition.Value)
	case domain.OperatorContains:
		return strings.Contains(normalize(value), normalize(condition.Value))
	case domain.OperatorGt:
		return toNumber(value) > toNumber(condition.Value)
	case domain.OperatorGte:
		return toNumber(value) >= toNumber(condition.Value)
	case domain.OperatorLt:
		return toNumber(value) < toNumber(condition.Value)
	case domain.OperatorLte:
		return toNumber(value) <= toNumber(condition.Value)
	case domain.OperatorIn:
		return evaluateIn(value, condition.Value)
	}
	return false
}

func evaluateIn(value, filterValue any) bool {
	haystack := normalize(value)
	switch list := filterValue.(type) {
	case []any:
		for _, item := range list {
			if strings.Contains(haystack, normalize(item)) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range list {
			if strings.Contains(haystack, normalize(item)) {
				return true
			}
		}
		return false
	}
	return strings.Contains(haystack, normalize(filterValue))
}

func normalize(value any) string {
	return strings.ToLower(strings.TrimSpace(stringify(value)))
}

func stringify(value any) string {
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

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// toNumber parses comparison operands: ISO-date-like strings become epoch
// milliseconds, everything else goes through ParseFloat with 0 as the
// fallback for non-numeric values.
func toNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	}

	raw := strings.TrimSpace(stringify(value))
	if isoDatePattern.MatchString(raw) {
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return float64(ts.UnixMilli())
			}
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
