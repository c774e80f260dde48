package repository

import (
	"time"

	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// JobFilter filtros opcionales para listar trabajos.
type JobFilter struct {
	Status   string
	Priority string
	Limit    int
	Offset   int
}

// JobRepository define el puerto de persistencia para Job.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id, companyID string) (*entity.Job, error)
	ListByCompany(companyID string, filter JobFilter) ([]*entity.Job, error)
	ListByIDs(ids []string, companyID string) ([]*entity.Job, error)
	ListRecent(companyID string, limit int) ([]*entity.Job, error)
	UpdateStatus(id, companyID, status string, completedDate *time.Time) (bool, error)
	AddNote(note *entity.JobNote) error
	Delete(id, companyID string) (bool, error)
}
