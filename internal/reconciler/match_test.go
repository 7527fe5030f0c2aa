package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/pkg/models"
)

var certificateTypes = []models.LookupEntity{
	{ID: 1, Name: "AWS Certified Solutions Architect"},
	{ID: 2, Name: "Google Cloud Professional"},
	{ID: 5, Name: "Project Management Professional (PMP)"},
}

func TestMatchEntity(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		wantID    int64
		wantOK    bool
	}{
		{"abbreviation matches expansion", "AWS", 1, true},
		{"expansion matches abbreviation", "AWS Certified Solutions Architect Professional Level", 1, true},
		{"case insensitive", "aws", 1, true},
		{"pmp abbreviation", "PMP", 5, true},
		{"no entry for candidate", "Azure", 0, false},
		{"empty candidate never matches", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, ok := MatchEntity(tt.candidate, certificateTypes)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, entity.ID)
			}
		})
	}
}

func TestMatchEntityFirstMatchDeterminism(t *testing.T) {
	// Both entries satisfy the predicate for "Java"
	entities := []models.LookupEntity{
		{ID: 10, Name: "Java"},
		{ID: 11, Name: "JavaScript"},
	}

	for i := 0; i < 50; i++ {
		entity, ok := MatchEntity("Java", entities)
		require.True(t, ok)
		assert.Equal(t, int64(10), entity.ID)
	}
}

func TestMatchRoleLevel(t *testing.T) {
	levels := []models.JobRoleLevel{
		{ID: 1, Position: "Backend Developer", Level: "Junior"},
		{ID: 2, Position: "Backend Developer", Level: "Senior"},
		{ID: 3, Position: "Frontend Developer", Level: "Senior"},
	}

	tests := []struct {
		name     string
		position string
		level    string
		wantID   int64
		wantOK   bool
	}{
		{"both axes match", "Backend", "Senior", 2, true},
		{"level mismatch fails conjunctive check", "Backend", "Principal", 0, false},
		{"empty level passes that axis", "Frontend", "", 3, true},
		{"empty position passes that axis", "", "Junior", 1, true},
		{"both empty matches nothing", "", "", 0, false},
		{"position mismatch", "Data Engineer", "Senior", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jrl, ok := MatchRoleLevel(tt.position, tt.level, levels)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, jrl.ID)
			}
		})
	}
}
