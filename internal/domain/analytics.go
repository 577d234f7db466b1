package domain

// CompanyPlacements counts selected candidates for a single company.
type CompanyPlacements struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Placements  int    `json:"placements"`
}

// PlacementStats aggregates placement figures for the placement-team dashboard.
type PlacementStats struct {
	TotalStudents     int                       `json:"total_students"`
	PlacedStudents    int                       `json:"placed_students"`
	TotalCompanies    int                       `json:"total_companies"`
	TotalJobs         int                       `json:"total_jobs"`
	OpenJobs          int                       `json:"open_jobs"`
	TotalApplications int                       `json:"total_applications"`
	PlacementRate     float64                   `json:"placement_rate"`
	Funnel            map[ApplicationStatus]int `json:"funnel"`
	TopCompanies      []CompanyPlacements       `json:"top_companies"`
}
