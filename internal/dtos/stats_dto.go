package dtos

// UserStats buckets one user's applications by status.
type UserStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"` // submitted + under_review
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Draft    int64 `json:"draft"`
}

// AdminStats is the system-wide dashboard payload, recomputed per query.
type AdminStats struct {
	Pending        int64 `json:"pending"`
	ProcessedToday int64 `json:"processed_today"`
	Overdue        int64 `json:"overdue"`   // still pending, created over 5 days ago
	ThisWeek       int64 `json:"this_week"` // created within the last 7 days
}
