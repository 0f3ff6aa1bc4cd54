package filter

import (
	"sort"
	"strings"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// fieldSynonyms maps conceptual field names to the spellings accepted per
// entity. These tables parallel the header normalizer's but serve query-time
// resolution: an AI-translated filter may ask for "skills" while the uploaded
// sheet carried "technologies". Keys and variants are matched case-insensitively.
var fieldSynonyms = map[domain.EntityType]map[string][]string{
	domain.EntityClients: {
		"clientId":     {"clientId", "client_id", "id", "customerId"},
		"clientName":   {"clientName", "client_name", "name", "customerName"},
		"requirements": {"requirements", "needs", "requiredSkills"},
		"priority":     {"priority", "importance", "urgency"},
		"company":      {"company", "organization"},
	},
	domain.EntityWorkers: {
		"workerId":     {"workerId", "worker_id", "id", "employeeId"},
		"name":         {"name", "workerName", "employeeName"},
		"skills":       {"skills", "skill", "technologies", "competencies", "expertise"},
		"availability": {"availability", "available", "capacity"},
		"rate":         {"rate", "hourlyRate", "cost", "price"},
		"location":     {"location", "city", "office", "region"},
	},
	domain.EntityTasks: {
		"taskId":      {"taskId", "task_id", "id", "jobId"},
		"clientId":    {"clientId", "client_id", "customerId"},
		"duration":    {"duration", "hours", "effort", "estimatedHours"},
		"skills":      {"skills", "skill", "technologies", "requiredSkills"},
		"deadline":    {"deadline", "dueDate", "targetDate"},
		"description": {"description", "details", "notes"},
		"status":      {"status", "state"},
	},
}

// variantIndex inverts fieldSynonyms per entity: lower-cased concept or
// variant spelling to the concept's variant list. Built once over sorted
// concept names so a spelling claimed by two concepts always resolves the
// same way.
var variantIndex = buildVariantIndex()

func buildVariantIndex() map[domain.EntityType]map[string][]string {
	index := make(map[domain.EntityType]map[string][]string, len(fieldSynonyms))
	for entityType, groups := range fieldSynonyms {
		concepts := make([]string, 0, len(groups))
		for concept := range groups {
			concepts = append(concepts, concept)
		}
		sort.Strings(concepts)

		entries := make(map[string][]string)
		for _, concept := range concepts {
			variants := groups[concept]
			keys := append([]string{concept}, variants...)
			for _, key := range keys {
				lowered := strings.ToLower(key)
				if _, claimed := entries[lowered]; !claimed {
					entries[lowered] = variants
				}
			}
		}
		index[entityType] = entries
	}
	return index
}
