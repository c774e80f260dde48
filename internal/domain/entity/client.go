package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente final de la empresa (dueño de los trabajos).
type Client struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	TotalJobs     int
	TotalRevenue  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
