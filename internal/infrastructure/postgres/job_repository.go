package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// jobColumns columnas de jobs prefijadas con j. más el nombre del cliente (JOIN).
const jobColumns = `j.id, j.company_id, j.client_id, j.title, j.description, j.service_type,
	j.status, j.priority, j.scheduled_date, j.completed_date, j.estimated_duration,
	j.actual_duration, j.estimated_cost, j.actual_cost, j.assigned_technician_id,
	j.created_at, j.updated_at, c.name AS client_name`

const jobFrom = ` FROM jobs j JOIN clients c ON c.id = j.client_id`

// JobRepo implementación del puerto JobRepository sobre PostgreSQL.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador de persistencia para trabajos. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste un nuevo trabajo y suma 1 a total_jobs del cliente.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (id, company_id, client_id, title, description, service_type, status, priority,
			scheduled_date, completed_date, estimated_duration, actual_duration, estimated_cost, actual_cost,
			assigned_technician_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CompanyID, job.ClientID, job.Title, job.Description, job.ServiceType,
		job.Status, job.Priority, job.ScheduledDate, job.CompletedDate, job.EstimatedDuration,
		job.ActualDuration, job.EstimatedCost, job.ActualCost, job.AssignedTechnicianID,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE clients SET total_jobs = total_jobs + 1, updated_at = now() WHERE id = $1 AND company_id = $2`,
		job.ClientID, job.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("update client total_jobs: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID dentro de la empresa. Nil si no existe.
func (r *JobRepo) GetByID(id, companyID string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + jobFrom + ` WHERE j.id = $1 AND j.company_id = $2`
	var j entity.Job
	err := r.q.QueryRow(context.Background(), query, id, companyID).Scan(scanJobFields(&j)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// ListByCompany lista trabajos con filtros opcionales, ordenados por fecha agendada descendente.
func (r *JobRepo) ListByCompany(companyID string, filter repository.JobFilter) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + jobFrom + ` WHERE j.company_id = $1`
	args := []any{companyID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND j.status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND j.priority = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY j.scheduled_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryJobs(query, args...)
}

// ListByIDs devuelve los trabajos de la empresa cuyos IDs estén en la lista.
func (r *JobRepo) ListByIDs(ids []string, companyID string) ([]*entity.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + jobColumns + jobFrom + ` WHERE j.company_id = $1 AND j.id = ANY($2)`
	return r.queryJobs(query, companyID, ids)
}

// ListRecent últimos trabajos creados (para el dashboard).
func (r *JobRepo) ListRecent(companyID string, limit int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + jobFrom + ` WHERE j.company_id = $1 ORDER BY j.created_at DESC LIMIT $2`
	return r.queryJobs(query, companyID, limit)
}

// UpdateStatus cambia el estado; completedDate no nil fija completed_date.
// Devuelve false si el trabajo no existe en la empresa.
func (r *JobRepo) UpdateStatus(id, companyID, status string, completedDate *time.Time) (bool, error) {
	query := `
		UPDATE jobs SET status = $3, completed_date = COALESCE($4, completed_date), updated_at = now()
		WHERE id = $1 AND company_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, id, companyID, status, completedDate)
	if err != nil {
		return false, fmt.Errorf("update job status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AddNote agrega una nota de seguimiento al trabajo.
func (r *JobRepo) AddNote(note *entity.JobNote) error {
	query := `
		INSERT INTO job_notes (id, job_id, text, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.JobID, note.Text, note.CreatedBy, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert job note: %w", err)
	}
	return nil
}

// Delete elimina un trabajo. Devuelve false si no existía en la empresa.
func (r *JobRepo) Delete(id, companyID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM jobs WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return false, fmt.Errorf("delete job: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *JobRepo) queryJobs(query string, args ...any) ([]*entity.Job, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(scanJobFields(&j)...); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}

func scanJobFields(j *entity.Job) []any {
	return []any{
		&j.ID, &j.CompanyID, &j.ClientID, &j.Title, &j.Description, &j.ServiceType,
		&j.Status, &j.Priority, &j.ScheduledDate, &j.CompletedDate, &j.EstimatedDuration,
		&j.ActualDuration, &j.EstimatedCost, &j.ActualCost, &j.AssignedTechnicianID,
		&j.CreatedAt, &j.UpdatedAt, &j.ClientName,
	}
}
