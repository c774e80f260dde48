package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y prioridades de un trabajo de campo.
const (
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"

	JobPriorityLow    = "low"
	JobPriorityMedium = "medium"
	JobPriorityHigh   = "high"
	JobPriorityUrgent = "urgent"
)

// ValidJobStatus verifica que el estado sea uno de los permitidos.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusScheduled, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Job representa un trabajo de servicio en campo (instalación, reparación, mantenimiento...).
type Job struct {
	ID                   string
	CompanyID            string
	ClientID             string
	Title                string
	Description          string
	ServiceType          string
	Status               string // scheduled, in_progress, completed, cancelled
	Priority             string // low, medium, high, urgent
	ScheduledDate        time.Time
	CompletedDate        *time.Time
	EstimatedDuration    int // minutos
	ActualDuration       *int
	EstimatedCost        decimal.Decimal
	ActualCost           *decimal.Decimal
	AssignedTechnicianID string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Campo de lectura (JOIN con clients); no se persiste en jobs.
	ClientName string
}

// BillableCost devuelve el costo real si existe, si no el estimado.
func (j *Job) BillableCost() decimal.Decimal {
	if j.ActualCost != nil {
		return *j.ActualCost
	}
	return j.EstimatedCost
}

// JobNote nota de seguimiento agregada al trabajo (ej. al cambiar de estado).
type JobNote struct {
	ID        string
	JobID     string
	Text      string
	CreatedBy string
	CreatedAt time.Time
}
