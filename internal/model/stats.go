package model

// PlatformStats is the public landing-page summary.
type PlatformStats struct {
	TotalExams     int `json:"totalExams"`
	ActiveTeachers int `json:"activeTeachers"`
}
