package response_models

// DashboardReport is the read-side aggregation over one party's feedback.
type DashboardReport struct {
	TotalFeedback int64            `json:"totalFeedback"`
	ByStatus      map[string]int64 `json:"byStatus"`
	ByType        map[string]int64 `json:"byType"`
	MonthlyTrend  []MonthBucket    `json:"monthlyTrend"`
	TopProducts   []ProductCount   `json:"topProducts"`
}

// MonthBucket is one trailing-calendar-month count, keyed like "Jan 2006".
type MonthBucket struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type ProductCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
