package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// JobUseCase alta, consulta y transiciones de estado de trabajos de campo.
type JobUseCase struct {
	jobRepo    repository.JobRepository
	clientRepo repository.ClientRepository
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(jobRepo repository.JobRepository, clientRepo repository.ClientRepository) *JobUseCase {
	return &JobUseCase{jobRepo: jobRepo, clientRepo: clientRepo}
}

// CreateJob alta de trabajo en estado scheduled. El cliente debe existir en la empresa.
func (uc *JobUseCase) CreateJob(tc domain.TenantContext, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !tc.Valid() || in.Title == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	priority := in.Priority
	if priority == "" {
		priority = entity.JobPriorityMedium
	}
	now := time.Now()
	job := &entity.Job{
		ID:                   uuid.New().String(),
		CompanyID:            tc.CompanyID,
		ClientID:             in.ClientID,
		Title:                in.Title,
		Description:          in.Description,
		ServiceType:          in.ServiceType,
		Status:               entity.JobStatusScheduled,
		Priority:             priority,
		ScheduledDate:        in.ScheduledDate,
		EstimatedDuration:    in.EstimatedDuration,
		EstimatedCost:        in.EstimatedCost,
		AssignedTechnicianID: in.AssignedTechnicianID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.jobRepo.Create(job); err != nil {
		return nil, err
	}
	job.ClientName = client.Name
	return toJobResponse(job), nil
}

// GetJob devuelve un trabajo de la empresa.
func (uc *JobUseCase) GetJob(companyID, jobID string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(jobID, companyID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return toJobResponse(job), nil
}

// ListJobs lista trabajos con filtros de estado y prioridad, ordenados por fecha agendada.
func (uc *JobUseCase) ListJobs(companyID, status, priority string, page dto.PageRequest) ([]dto.JobResponse, error) {
	if status != "" && !entity.ValidJobStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	jobs, err := uc.jobRepo.ListByCompany(companyID, repository.JobFilter{
		Status:   status,
		Priority: priority,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, *toJobResponse(j))
	}
	return out, nil
}

// UpdateStatus transición de estado. Pasar a completed fija completed_date; una
// nota opcional queda en el historial del trabajo.
func (uc *JobUseCase) UpdateStatus(tc domain.TenantContext, jobID string, in dto.UpdateJobStatusRequest) error {
	if !entity.ValidJobStatus(in.Status) {
		return domain.ErrInvalidInput
	}
	var completedDate *time.Time
	now := time.Now()
	if in.Status == entity.JobStatusCompleted {
		completedDate = &now
	}
	ok, err := uc.jobRepo.UpdateStatus(jobID, tc.CompanyID, in.Status, completedDate)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if in.Notes != "" {
		return uc.jobRepo.AddNote(&entity.JobNote{
			ID:        uuid.New().String(),
			JobID:     jobID,
			Text:      in.Notes,
			CreatedBy: tc.ActorID,
			CreatedAt: now,
		})
	}
	return nil
}

// DeleteJob elimina el trabajo.
func (uc *JobUseCase) DeleteJob(tc domain.TenantContext, jobID string) error {
	ok, err := uc.jobRepo.Delete(jobID, tc.CompanyID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:                   j.ID,
		Title:                j.Title,
		Description:          j.Description,
		ClientID:             j.ClientID,
		ClientName:           j.ClientName,
		ServiceType:          j.ServiceType,
		Status:               j.Status,
		Priority:             j.Priority,
		ScheduledDate:        j.ScheduledDate,
		CompletedDate:        j.CompletedDate,
		EstimatedDuration:    j.EstimatedDuration,
		ActualDuration:       j.ActualDuration,
		EstimatedCost:        j.EstimatedCost,
		ActualCost:           j.ActualCost,
		AssignedTechnicianID: j.AssignedTechnicianID,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
	}
}
