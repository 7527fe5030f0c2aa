package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/pkg/models"
)

func TestBuildCertificatePrefills(t *testing.T) {
	t.Run("matched certificate resolves id and normalizes date", func(t *testing.T) {
		certs := []models.CertificateSuggestion{
			{Name: "PMP", IssuedDate: "2022"},
		}
		types := []models.LookupEntity{
			{ID: 5, Name: "Project Management Professional (PMP)"},
		}

		prefills := BuildCertificatePrefills(certs, types)
		require.Len(t, prefills, 1)
		assert.Equal(t, int64(5), prefills[0].CertificateTypeID)
		assert.Equal(t, "2022-01-01", prefills[0].IssuedDate)
		assert.True(t, prefills[0].Matched)
	})

	t.Run("unmatched certificate survives for manual selection", func(t *testing.T) {
		certs := []models.CertificateSuggestion{
			{Name: "Scrum Master", IssuedDate: "2021-05"},
		}

		prefills := BuildCertificatePrefills(certs, []models.LookupEntity{{ID: 5, Name: "PMP"}})
		require.Len(t, prefills, 1)
		assert.False(t, prefills[0].Matched)
		assert.Zero(t, prefills[0].CertificateTypeID)
		assert.Equal(t, "Scrum Master", prefills[0].Name)
		assert.Equal(t, "2021-05-01", prefills[0].IssuedDate)
	})

	t.Run("nameless entries are dropped", func(t *testing.T) {
		certs := []models.CertificateSuggestion{{Name: "", IssuedDate: "2022"}}
		assert.Empty(t, BuildCertificatePrefills(certs, nil))
	})
}

func TestBuildSkillPrefills(t *testing.T) {
	skills := []models.LookupEntity{
		{ID: 1, Name: "Go"},
		{ID: 2, Name: "PostgreSQL"},
	}

	prefills := BuildSkillPrefills([]string{"Go", "Rust", ""}, skills)
	require.Len(t, prefills, 2)

	assert.True(t, prefills[0].Matched)
	assert.Equal(t, int64(1), prefills[0].SkillID)
	assert.Equal(t, "Go", prefills[0].Name)

	assert.False(t, prefills[1].Matched)
	assert.Equal(t, "Rust", prefills[1].Name)
}

func TestBuildRolePrefills(t *testing.T) {
	levels := []models.JobRoleLevel{
		{ID: 7, Position: "Backend Developer", Level: "Senior"},
	}

	roles := []models.JobRoleSuggestion{
		{Position: "Backend", Level: "Senior", YearsOfExperience: 6, MonthlyRate: 4500},
		{Position: "Designer", Level: "Lead"},
	}

	prefills := BuildRolePrefills(roles, levels)
	require.Len(t, prefills, 2)

	assert.True(t, prefills[0].Matched)
	assert.Equal(t, int64(7), prefills[0].JobRoleLevelID)
	// Matched prefills carry the canonical spelling
	assert.Equal(t, "Backend Developer", prefills[0].Position)
	assert.Equal(t, float64(6), prefills[0].YearsOfExperience)

	assert.False(t, prefills[1].Matched)
	assert.Equal(t, "Designer", prefills[1].Position)
}

func TestBuildExperiencePrefills(t *testing.T) {
	experiences := []models.WorkExperienceRecord{
		{Company: "Acme", Position: "Engineer", StartDate: "2019-03", EndDate: "present", Description: "Backend services"},
		{Company: "", Position: ""},
	}

	prefills := BuildExperiencePrefills(experiences)
	require.Len(t, prefills, 1)
	assert.Equal(t, "2019-03-01", prefills[0].StartDate)
	assert.Equal(t, "", prefills[0].EndDate)
	assert.Equal(t, "Acme", prefills[0].Company)
}
