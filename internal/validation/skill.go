package validation

import (
	"fmt"
	"strings"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// CheckSkillCoverage flags tasks requiring a skill no worker offers. Skill
// lists are comma or semicolon delimited and compared trimmed, lower-cased.
func CheckSkillCoverage(tasks, workers []domain.Row) []domain.Finding {
	offered := make(map[string]struct{})
	for _, worker := range workers {
		for _, skill := range splitSkills(worker["skills"]) {
			offered[skill] = struct{}{}
		}
	}

	var findings []domain.Finding
	for i, task := range tasks {
		var uncovered []string
		for _, skill := range splitSkills(task["skills"]) {
			if _, ok := offered[skill]; !ok {
				uncovered = append(uncovered, skill)
			}
		}
		if len(uncovered) == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Type:       domain.FindingWarning,
			Category:   domain.CategorySkill,
			Severity:   domain.SeverityMedium,
			DataType:   domain.EntityTasks,
			Row:        i,
			Column:     "skills",
			Message:    fmt.Sprintf("no worker offers: %s", strings.Join(uncovered, ", ")),
			Value:      task["skills"],
			Suggestion: "hire for the missing skills or adjust the task requirements",
		})
	}
	return findings
}

// CheckWorkerUtilization flags workers whose skills no task requires. These
// findings are informational, not defects.
func CheckWorkerUtilization(workers, tasks []domain.Row) []domain.Finding {
	required := make(map[string]struct{})
	for _, task := range tasks {
		for _, skill := range splitSkills(task["skills"]) {
			required[skill] = struct{}{}
		}
	}

	var findings []domain.Finding
	for i, worker := range workers {
		skills := splitSkills(worker["skills"])
		if len(skills) == 0 {
			continue
		}
		used := false
		for _, skill := range skills {
			if _, ok := required[skill]; ok {
				used = true
				break
			}
		}
		if used {
			continue
		}
		findings = append(findings, domain.Finding{
			Type:       domain.FindingWarning,
			Category:   domain.CategorySkill,
			Severity:   domain.SeverityLow,
			DataType:   domain.EntityWorkers,
			Row:        i,
			Column:     "skills",
			Message:    fmt.Sprintf("none of this worker's skills (%s) are required by any task", strings.Join(skills, ", ")),
			Value:      worker["skills"],
		})
	}
	return findings
}
