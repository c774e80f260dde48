package inventory

import (
	"context"
	"time"

	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// AlertUseCase consulta y reconocimiento de alertas de stock bajo.
// La apertura de alertas la hace el motor de movimientos (maybeAlert).
type AlertUseCase struct {
	alertRepo repository.LowStockAlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.LowStockAlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// ListAlerts lista alertas de la empresa; acknowledged nil = todas.
func (uc *AlertUseCase) ListAlerts(_ context.Context, companyID string, acknowledged *bool) ([]*entity.LowStockAlert, error) {
	return uc.alertRepo.List(companyID, acknowledged)
}

// Acknowledge marca una alerta como reconocida, registrando actor y momento.
// Idempotente: repetir el reconocimiento responde éxito. Reconocer habilita que
// una futura caída por el mínimo abra una alerta nueva.
func (uc *AlertUseCase) Acknowledge(_ context.Context, tc domain.TenantContext, alertID string) error {
	if !tc.Valid() || alertID == "" {
		return domain.ErrInvalidInput
	}
	ok, err := uc.alertRepo.Acknowledge(alertID, tc.CompanyID, tc.ActorID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
