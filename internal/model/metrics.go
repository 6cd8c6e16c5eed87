package model

// DashboardMetrics is the aggregate snapshot shown on the dashboard. All
// values are derived from the lead and call-log collections, never stored.
type DashboardMetrics struct {
	TotalLeads     int     `json:"total_leads"`
	CallsToday     int     `json:"calls_today"`
	CallsThisWeek  int     `json:"calls_this_week"`
	HotLeads       int     `json:"hot_leads"`
	WarmLeads      int     `json:"warm_leads"`
	ColdLeads      int     `json:"cold_leads"`
	AvgCallsPerDay float64 `json:"avg_calls_per_day"`
	ConversionRate int     `json:"conversion_rate"`
	ConnectionRate int     `json:"connection_rate"`
}
