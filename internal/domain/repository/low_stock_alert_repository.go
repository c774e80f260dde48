package repository

import (
	"time"

	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// LowStockAlertRepository define el puerto de persistencia para alertas de stock bajo.
type LowStockAlertRepository interface {
	Create(alert *entity.LowStockAlert) error
	// FindUnacknowledged devuelve la alerta abierta del ítem, o nil si no hay.
	FindUnacknowledged(companyID, itemID string) (*entity.LowStockAlert, error)
	// List devuelve alertas enriquecidas con nombre/SKU/stock actual del ítem.
	// acknowledged nil = todas; true/false filtra por estado.
	List(companyID string, acknowledged *bool) ([]*entity.LowStockAlert, error)
	// Acknowledge marca la alerta como reconocida; false si no existe en la empresa.
	Acknowledge(id, companyID, userID string, at time.Time) (bool, error)
}
