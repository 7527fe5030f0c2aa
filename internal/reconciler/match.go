package reconciler

import (
	"strings"

	"talent-utils/pkg/models"
)

// containsEitherWay reports whether either lower-cased name contains the
// other as a substring. This handles both abbreviation and expansion, e.g.
// "AWS" against "AWS Certified Solutions Architect".
func containsEitherWay(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchEntity finds the canonical entity whose name has a bidirectional
// substring relationship with the candidate name. The first entity in list
// order wins; ok is false when nothing matches and the caller must require a
// manual selection instead of guessing.
func MatchEntity(name string, entities []models.LookupEntity) (models.LookupEntity, bool) {
	for _, entity := range entities {
		if containsEitherWay(name, entity.Name) {
			return entity, true
		}
	}
	return models.LookupEntity{}, false
}

// MatchRoleLevel finds the first job-role-level whose position AND level both
// match the candidate's claim. An empty claim on either axis passes that axis
// automatically; an empty claim on both axes matches nothing.
func MatchRoleLevel(position, level string, levels []models.JobRoleLevel) (models.JobRoleLevel, bool) {
	if strings.TrimSpace(position) == "" && strings.TrimSpace(level) == "" {
		return models.JobRoleLevel{}, false
	}

	for _, jrl := range levels {
		positionOK := strings.TrimSpace(position) == "" || containsEitherWay(position, jrl.Position)
		levelOK := strings.TrimSpace(level) == "" || containsEitherWay(level, jrl.Level)
		if positionOK && levelOK {
			return jrl, true
		}
	}
	return models.JobRoleLevel{}, false
}
