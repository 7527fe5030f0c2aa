package models

// ExtractionEnvelope is the raw result of a document extraction call.
// GenerateText is expected to contain a JSON object, possibly wrapped in
// markdown code fences.
type ExtractionEnvelope struct {
	IsSuccess    bool   `json:"isSuccess"`
	OriginalText string `json:"originalText"`
	GenerateText string `json:"generateText"`
}

// ExtractedCandidate is the structured record parsed from an extraction
// envelope. Extraction is best-effort, so every field may be empty.
type ExtractedCandidate struct {
	FullName        string                  `json:"full_name"`
	Email           string                  `json:"email"`
	Phone           string                  `json:"phone"`
	DateOfBirth     string                  `json:"date_of_birth"`
	Skills          []string                `json:"skills"`
	WorkExperiences []WorkExperienceRecord  `json:"work_experiences"`
	Certificates    []CertificateSuggestion `json:"certificates"`
	JobRoles        []JobRoleSuggestion     `json:"job_roles"`
}

// WorkExperienceRecord represents one employment entry found in a CV
type WorkExperienceRecord struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// CertificateSuggestion represents one certificate found in a CV
type CertificateSuggestion struct {
	Name       string `json:"name"`
	IssuedDate string `json:"issued_date"`
	ImageURL   string `json:"image_url"`
}

// JobRoleSuggestion represents one job-role claim found in a CV
type JobRoleSuggestion struct {
	Position          string  `json:"position"`
	Level             string  `json:"level"`
	YearsOfExperience float64 `json:"years_of_experience"`
	MonthlyRate       float64 `json:"monthly_rate"`
}

// CertificatePrefill is the form payload produced by applying a certificate
// suggestion against the canonical certificate-type list
type CertificatePrefill struct {
	CertificateTypeID int64  `json:"certificate_type_id,omitempty"`
	Name              string `json:"name"`
	IssuedDate        string `json:"issued_date"`
	ImageURL          string `json:"image_url,omitempty"`
	Matched           bool   `json:"matched"`
}

// RolePrefill is the form payload produced by applying a job-role suggestion
// against the canonical job-role-level list
type RolePrefill struct {
	JobRoleLevelID    int64   `json:"job_role_level_id,omitempty"`
	Position          string  `json:"position"`
	Level             string  `json:"level"`
	YearsOfExperience float64 `json:"years_of_experience"`
	MonthlyRate       float64 `json:"monthly_rate"`
	Matched           bool    `json:"matched"`
}

// ExperiencePrefill is the form payload for one work-experience entry with
// its dates normalized to YYYY-MM-DD
type ExperiencePrefill struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// SkillPrefill is the form payload produced by applying a skill suggestion
// against the canonical skill list
type SkillPrefill struct {
	SkillID int64  `json:"skill_id,omitempty"`
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
}
