package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, company_id, name, email, phone, address, contact_person, total_jobs, total_revenue, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.CompanyID, client.Name, client.Email, client.Phone,
		client.Address, client.ContactPerson, client.TotalJobs, client.TotalRevenue,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID dentro de la empresa. Nil si no existe.
func (r *ClientRepo) GetByID(id, companyID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND company_id = $2`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id, companyID).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone,
		&c.Address, &c.ContactPerson, &c.TotalJobs, &c.TotalRevenue,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// ListByCompany lista clientes por empresa con paginación.
func (r *ClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone,
			&c.Address, &c.ContactPerson, &c.TotalJobs, &c.TotalRevenue,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto; los acumulados (total_jobs, total_revenue)
// los mantienen las escrituras de trabajos y facturas.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $3, email = $4, phone = $5, address = $6, contact_person = $7, updated_at = $8
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.CompanyID, client.Name, client.Email, client.Phone,
		client.Address, client.ContactPerson, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente. Devuelve false si no existía en la empresa.
func (r *ClientRepo) Delete(id, companyID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM clients WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
