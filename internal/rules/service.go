// Package rules manages the scheduling rules (co-run, load-limit,
// phase-window) stored alongside a session's datasets.
package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rohittcodes/data-alchemist/internal/domain"
	"github.com/rohittcodes/data-alchemist/internal/session"
)

// ErrRuleNotFound is returned when a rule id does not exist in the session.
var ErrRuleNotFound = errors.New("rule not found")

// Service validates and stores scheduling rules per session. The optional
// translator converts natural language into rule shapes before the same
// structural and referential checks apply.
type Service struct {
	store      *session.Store
	translator Translator
}

// NewService creates a rules service. translator may be nil when the natural
// language path is disabled.
func NewService(store *session.Store, translator Translator) *Service {
	return &Service{store: store, translator: translator}
}

// Add validates the rule against the session's datasets, assigns it an id,
// and persists it. The referential check and the append run inside the
// store's update lock so the rule is checked against the datasets actually
// persisted alongside it.
func (s *Service) Add(sessionID uuid.UUID, rule domain.Rule) (domain.Rule, error) {
	if err := rule.Validate(); err != nil {
		return domain.Rule{}, err
	}

	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		if err := checkReferences(rule, sess.Datasets); err != nil {
			return err
		}
		rule.ID = uuid.New()
		rule.CreatedAt = time.Now()
		sess.Rules = append(sess.Rules, rule)
		return nil
	})
	if err != nil {
		return domain.Rule{}, err
	}
	return rule, nil
}

// AddFromText runs the natural language text through the translator and adds
// the resulting rule.
func (s *Service) AddFromText(ctx context.Context, sessionID uuid.UUID, text string) (domain.Rule, error) {
	if s.translator == nil {
		return domain.Rule{}, errors.New("natural language rule creation is not configured")
	}
	query, err := s.translator.Translate(ctx, text)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("failed to translate rule: %w", err)
	}
	if query.Rule == nil {
		return domain.Rule{}, errors.New("translator did not produce a rule")
	}
	return s.Add(sessionID, *query.Rule)
}

// List returns the session's rules in creation order.
func (s *Service) List(sessionID uuid.UUID) ([]domain.Rule, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Rules, nil
}

// Delete removes one rule from the session.
func (s *Service) Delete(sessionID, ruleID uuid.UUID) error {
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		kept := sess.Rules[:0]
		found := false
		for _, rule := range sess.Rules {
			if rule.ID == ruleID {
				found = true
				continue
			}
			kept = append(kept, rule)
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrRuleNotFound, ruleID)
		}
		sess.Rules = kept
		return nil
	})
	return err
}

// checkReferences verifies the ids a rule names exist in the uploaded
// datasets. Rules against datasets not uploaded yet are accepted; the check
// only rejects ids that are demonstrably absent.
func checkReferences(rule domain.Rule, datasets domain.Datasets) error {
	switch rule.Type {
	case domain.RuleCoRun:
		if datasets.Tasks == nil {
			return nil
		}
		known := idSet(datasets.Tasks.Rows, "taskId")
		for _, id := range rule.Tasks {
			if _, ok := known[strings.ToLower(strings.TrimSpace(id))]; !ok {
				return fmt.Errorf("coRun rule references unknown task %q", id)
			}
		}
	case domain.RuleLoadLimit:
		if datasets.Workers == nil {
			return nil
		}
		known := idSet(datasets.Workers.Rows, "workerId")
		for _, id := range rule.Workers {
			if _, ok := known[strings.ToLower(strings.TrimSpace(id))]; !ok {
				return fmt.Errorf("loadLimit rule references unknown worker %q", id)
			}
		}
	}
	return nil
}

func idSet(rows []domain.Row, column string) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if value, ok := row[column].(string); ok {
			id := strings.ToLower(strings.TrimSpace(value))
			if id != "" {
				set[id] = struct{}{}
			}
		}
	}
	return set
}
