package model

// DashboardStats is derived from the current document snapshot on every
// refresh; it is never persisted.
type DashboardStats struct {
	TotalPolicies   int `json:"totalPolicies"`
	TotalSOPs       int `json:"totalSOPs"`
	UpcomingReviews int `json:"upcomingReviews"`
	OverdueReviews  int `json:"overdueReviews"`
}
