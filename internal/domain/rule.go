package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RuleType identifies the kind of scheduling rule a user has authored.
type RuleType string

const (
	RuleCoRun       RuleType = "coRun"
	RuleLoadLimit   RuleType = "loadLimit"
	RulePhaseWindow RuleType = "phaseWindow"
)

// Valid reports whether the rule type is known.
func (r RuleType) Valid() bool {
	switch r {
	case RuleCoRun, RuleLoadLimit, RulePhaseWindow:
		return true
	}
	return false
}

// Rule is a user-authored scheduling constraint stored alongside a session.
// The shape is a union: Tasks is set for coRun, Workers/MaxLoad for loadLimit,
// Phase/StartDate/EndDate for phaseWindow. Dates are ISO (2006-01-02).
type Rule struct {
	ID          uuid.UUID `json:"id"`
	Type        RuleType  `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	Tasks []string `json:"tasks,omitempty"`

	Workers []string `json:"workers,omitempty"`
	MaxLoad int      `json:"maxLoad,omitempty"`

	Phase     string `json:"phase,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

const ruleDateLayout = "2006-01-02"

// Validate checks the structural shape of the rule for its type. Referential
// checks against session datasets live in the rules service.
func (r Rule) Validate() error {
	switch r.Type {
	case RuleCoRun:
		if len(r.Tasks) < 2 {
			return errors.New("coRun rule requires at least two task ids")
		}
		for _, id := range r.Tasks {
			if strings.TrimSpace(id) == "" {
				return errors.New("coRun rule contains an empty task id")
			}
		}
	case RuleLoadLimit:
		if len(r.Workers) == 0 {
			return errors.New("loadLimit rule requires at least one worker id")
		}
		if r.MaxLoad <= 0 {
			return fmt.Errorf("loadLimit rule requires a positive maxLoad, got %d", r.MaxLoad)
		}
	case RulePhaseWindow:
		if strings.TrimSpace(r.Phase) == "" {
			return errors.New("phaseWindow rule requires a phase name")
		}
		start, err := time.Parse(ruleDateLayout, r.StartDate)
		if err != nil {
			return fmt.Errorf("phaseWindow rule has invalid startDate %q", r.StartDate)
		}
		end, err := time.Parse(ruleDateLayout, r.EndDate)
		if err != nil {
			return fmt.Errorf("phaseWindow rule has invalid endDate %q", r.EndDate)
		}
		if end.Before(start) {
			return fmt.Errorf("phaseWindow rule ends (%s) before it starts (%s)", r.EndDate, r.StartDate)
		}
	default:
		return fmt.Errorf("unknown rule type %q", r.Type)
	}
	return nil
}
