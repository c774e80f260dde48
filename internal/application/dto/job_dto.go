package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJobRequest alta de trabajo de campo.
type CreateJobRequest struct {
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	ClientID             string          `json:"client_id"`
	ServiceType          string          `json:"service_type"`
	Priority             string          `json:"priority"`
	ScheduledDate        time.Time       `json:"scheduled_date"`
	EstimatedDuration    int             `json:"estimated_duration"` // minutos
	EstimatedCost        decimal.Decimal `json:"estimated_cost"`
	AssignedTechnicianID string          `json:"assigned_technician_id"`
}

// UpdateJobStatusRequest transición de estado con nota opcional.
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// JobResponse trabajo completo.
type JobResponse struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Description          string           `json:"description,omitempty"`
	ClientID             string           `json:"client_id"`
	ClientName           string           `json:"client_name,omitempty"`
	ServiceType          string           `json:"service_type"`
	Status               string           `json:"status"`
	Priority             string           `json:"priority"`
	ScheduledDate        time.Time        `json:"scheduled_date"`
	CompletedDate        *time.Time       `json:"completed_date,omitempty"`
	EstimatedDuration    int              `json:"estimated_duration"`
	ActualDuration       *int             `json:"actual_duration,omitempty"`
	EstimatedCost        decimal.Decimal  `json:"estimated_cost"`
	ActualCost           *decimal.Decimal `json:"actual_cost,omitempty"`
	AssignedTechnicianID string           `json:"assigned_technician_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}
