package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientRequest alta/actualización de cliente.
type ClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
}

// ClientResponse cliente con sus acumulados.
type ClientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	ContactPerson string          `json:"contact_person,omitempty"`
	TotalJobs     int             `json:"total_jobs"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
