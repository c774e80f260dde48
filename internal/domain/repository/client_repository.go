package repository

import "github.com/jobberpro/fieldservice-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
// Todas las lecturas y escrituras van acotadas por companyID: un ID de otra
// empresa se comporta como inexistente (nil), nunca como prohibido.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id, companyID string) (*entity.Client, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id, companyID string) (bool, error)
}
