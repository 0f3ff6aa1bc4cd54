package rules

import (
	"context"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// StructuredQuery is what the external natural-language service hands back:
// either a scheduling rule or a data filter, never both.
type StructuredQuery struct {
	Rule   *domain.Rule       `json:"rule,omitempty"`
	Filter *domain.DataFilter `json:"filter,omitempty"`
}

// Translator abstracts the external natural-language-to-structured-query
// service. The validation and filter core has no dependency on any particular
// provider; anything satisfying this interface can be plugged in.
type Translator interface {
	Translate(ctx context.Context, naturalLanguage string) (StructuredQuery, error)
}

// TranslatorFunc adapts a plain function to the Translator interface.
type TranslatorFunc func(ctx context.Context, naturalLanguage string) (StructuredQuery, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(ctx context.Context, naturalLanguage string) (StructuredQuery, error) {
	return f(ctx, naturalLanguage)
}
