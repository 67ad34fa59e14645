package dto

// StudentReportResponse is the derived report for a single student. Soft
// skills only include skills with at least one surviving game score; the map
// is empty, not zero-filled, when none exist.
type StudentReportResponse struct {
	User          UserResponse       `json:"user"`
	AcademicScore int                `json:"academic_score"`
	SoftSkills    map[string]float64 `json:"soft_skills"`
}
