package models

// LookupCategory identifies a canonical lookup list owned by the HR backend
type LookupCategory string

const (
	LookupSkills           LookupCategory = "skills"
	LookupCertificateTypes LookupCategory = "certificate-types"
	LookupJobRoleLevels    LookupCategory = "job-role-levels"
)

// SuggestionKind identifies one staged suggestion list for a subject
type SuggestionKind string

const (
	KindSkills          SuggestionKind = "skills"
	KindCertificates    SuggestionKind = "certificates"
	KindJobRoles        SuggestionKind = "job-roles"
	KindWorkExperiences SuggestionKind = "work-experiences"
)

// LookupEntity is a stable server-owned reference entity (skill or
// certificate type). Consumed read-only; this service never mutates it.
type LookupEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JobRoleLevel is a canonical job-role-level pair. Matching against it is
// conjunctive over both axes.
type JobRoleLevel struct {
	ID       int64  `json:"id"`
	Position string `json:"position"`
	Level    string `json:"level"`
}
