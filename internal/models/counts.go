package models

// Counts is the /counts response body.
type Counts struct {
	ReviewCount  int64 `json:"reviewCount"`
	UserCount    int64 `json:"userCount"`
	ServiceCount int64 `json:"serviceCount"`
}
