package domain

import "github.com/shopspring/decimal"

// Stats is the aggregate snapshot behind the dashboard.
type Stats struct {
	TotalPayments int             `json:"totalPayments"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	FailedCount   int             `json:"failedCount"`
	Payments      []Payment       `json:"payments"`
}
