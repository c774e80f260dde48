// Package usecase casos de uso de la operación de campo: clientes y trabajos.
package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// ClientUseCase CRUD de clientes de la empresa.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClient alta de cliente con acumulados en cero.
func (uc *ClientUseCase) CreateClient(tc domain.TenantContext, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if !tc.Valid() || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:            uuid.New().String(),
		CompanyID:     tc.CompanyID,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		TotalRevenue:  decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetClient devuelve un cliente de la empresa.
func (uc *ClientUseCase) GetClient(companyID, clientID string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID, companyID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// ListClients lista clientes paginados.
func (uc *ClientUseCase) ListClients(companyID string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// UpdateClient reemplaza los datos de contacto; los acumulados no se tocan.
func (uc *ClientUseCase) UpdateClient(tc domain.TenantContext, clientID string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(clientID, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.ContactPerson = in.ContactPerson
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// DeleteClient elimina el cliente.
func (uc *ClientUseCase) DeleteClient(tc domain.TenantContext, clientID string) error {
	ok, err := uc.clientRepo.Delete(clientID, tc.CompanyID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		TotalJobs:     c.TotalJobs,
		TotalRevenue:  c.TotalRevenue,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
