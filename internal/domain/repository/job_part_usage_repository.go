package repository

import "github.com/jobberpro/fieldservice-api/internal/domain/entity"

// JobPartUsageRepository define el puerto de persistencia para consumos de repuestos.
// Registros inmutables, igual que el ledger de movimientos.
type JobPartUsageRepository interface {
	Create(usage *entity.JobPartUsage) error
	ListByJob(jobID, companyID string) ([]*entity.JobPartUsage, error)
}
