package reconciler

import (
	"talent-utils/pkg/models"
)

// BuildSkillPrefills pairs each extracted skill name with a canonical skill
// entity where one exists. Unmatched names survive with Matched=false so the
// form can ask for a manual pick instead of dropping the suggestion.
func BuildSkillPrefills(names []string, skills []models.LookupEntity) []models.SkillPrefill {
	prefills := make([]models.SkillPrefill, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		prefill := models.SkillPrefill{Name: name}
		if entity, ok := MatchEntity(name, skills); ok {
			prefill.SkillID = entity.ID
			prefill.Name = entity.Name
			prefill.Matched = true
		}
		prefills = append(prefills, prefill)
	}
	return prefills
}

// BuildCertificatePrefills resolves extracted certificates against the
// canonical certificate-type list and normalizes their issue dates
func BuildCertificatePrefills(certs []models.CertificateSuggestion, types []models.LookupEntity) []models.CertificatePrefill {
	prefills := make([]models.CertificatePrefill, 0, len(certs))
	for _, cert := range certs {
		if cert.Name == "" {
			continue
		}
		prefill := models.CertificatePrefill{
			Name:       cert.Name,
			IssuedDate: NormalizeDate(cert.IssuedDate),
			ImageURL:   cert.ImageURL,
		}
		if entity, ok := MatchEntity(cert.Name, types); ok {
			prefill.CertificateTypeID = entity.ID
			prefill.Matched = true
		}
		prefills = append(prefills, prefill)
	}
	return prefills
}

// BuildRolePrefills resolves extracted job-role claims against the canonical
// job-role-level list. Position and level must both match the same entry.
func BuildRolePrefills(roles []models.JobRoleSuggestion, levels []models.JobRoleLevel) []models.RolePrefill {
	prefills := make([]models.RolePrefill, 0, len(roles))
	for _, role := range roles {
		if role.Position == "" && role.Level == "" {
			continue
		}
		prefill := models.RolePrefill{
			Position:          role.Position,
			Level:             role.Level,
			YearsOfExperience: role.YearsOfExperience,
			MonthlyRate:       role.MonthlyRate,
		}
		if jrl, ok := MatchRoleLevel(role.Position, role.Level, levels); ok {
			prefill.JobRoleLevelID = jrl.ID
			prefill.Position = jrl.Position
			prefill.Level = jrl.Level
			prefill.Matched = true
		}
		prefills = append(prefills, prefill)
	}
	return prefills
}

// BuildExperiencePrefills normalizes work-experience dates for form prefill.
// An ongoing marker in the end date becomes an empty string, which the form
// treats as "still employed".
func BuildExperiencePrefills(experiences []models.WorkExperienceRecord) []models.ExperiencePrefill {
	prefills := make([]models.ExperiencePrefill, 0, len(experiences))
	for _, exp := range experiences {
		if exp.Company == "" && exp.Position == "" {
			continue
		}
		prefills = append(prefills, models.ExperiencePrefill{
			Company:     exp.Company,
			Position:    exp.Position,
			StartDate:   NormalizeDate(exp.StartDate),
			EndDate:     NormalizeDate(exp.EndDate),
			Description: exp.Description,
		})
	}
	return prefills
}
