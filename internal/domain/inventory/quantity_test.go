package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// NextQuantity — semántica de la transición por tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestNextQuantity_InSumaAlPrevio(t *testing.T) {
	next, err := inventory.NextQuantity(100, 50, entity.MovementTypeIn)
	require.NoError(t, err)
	assert.Equal(t, 150, next)
}

func TestNextQuantity_OutRestaDelPrevio(t *testing.T) {
	next, err := inventory.NextQuantity(100, 95, entity.MovementTypeOut)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
}

func TestNextQuantity_OutSinStockSuficiente(t *testing.T) {
	_, err := inventory.NextQuantity(100, 150, entity.MovementTypeOut)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"sacar más de lo disponible debe fallar sin dejar negativo")
}

func TestNextQuantity_OutExacto_QuedaEnCero(t *testing.T) {
	next, err := inventory.NextQuantity(30, 30, entity.MovementTypeOut)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "vaciar el stock exacto es válido")
}

func TestNextQuantity_AdjustmentEsValorAbsoluto(t *testing.T) {
	// adjustment fija la cantidad objetivo, no aplica un delta.
	next, err := inventory.NextQuantity(100, 42, entity.MovementTypeAdjustment)
	require.NoError(t, err)
	assert.Equal(t, 42, next)

	next, err = inventory.NextQuantity(5, 0, entity.MovementTypeAdjustment)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "un conteo físico puede fijar el stock en cero")
}

func TestNextQuantity_MagnitudNegativaEsInvalida(t *testing.T) {
	_, err := inventory.NextQuantity(10, -1, entity.MovementTypeIn)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNextQuantity_TipoDesconocido(t *testing.T) {
	_, err := inventory.NextQuantity(10, 1, "transfer")
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación de SKU
// ──────────────────────────────────────────────────────────────────────────────

func TestSKUPrefix_TomaTresLetrasEnMayusculas(t *testing.T) {
	assert.Equal(t, "PLU", inventory.SKUPrefix("plumbing"))
	assert.Equal(t, "PAR", inventory.SKUPrefix("parts"))
	assert.Equal(t, "TOO", inventory.SKUPrefix(" tools "))
}

func TestSKUPrefix_CategoriaCortaSeRellenaConX(t *testing.T) {
	assert.Equal(t, "ACX", inventory.SKUPrefix("ac"))
	assert.Equal(t, "AXX", inventory.SKUPrefix("a"))
	assert.Equal(t, "XXX", inventory.SKUPrefix(""))
}

func TestFormatSKU_SufijoConCeros(t *testing.T) {
	assert.Equal(t, "PLU-0001", inventory.FormatSKU("PLU", 1))
	assert.Equal(t, "PLU-0042", inventory.FormatSKU("PLU", 42))
	assert.Equal(t, "PLU-10000", inventory.FormatSKU("PLU", 10000),
		"más de cuatro dígitos no se trunca")
}

func TestNextSKUSequence_ConsecutivoDesdeElUltimo(t *testing.T) {
	assert.Equal(t, 1, inventory.NextSKUSequence(""))
	assert.Equal(t, 2, inventory.NextSKUSequence("PLU-0001"))
	assert.Equal(t, 100, inventory.NextSKUSequence("PLU-0099"))
}

func TestNextSKUSequence_SufijoNoNumericoReinicia(t *testing.T) {
	assert.Equal(t, 1, inventory.NextSKUSequence("PLU-ABC"))
	assert.Equal(t, 1, inventory.NextSKUSequence("PLU-"))
	assert.Equal(t, 1, inventory.NextSKUSequence("SINGUION"))
}
