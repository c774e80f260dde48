// Package inventory contiene la aritmética pura del ledger de stock:
// transición de cantidades por tipo de movimiento y derivación de SKUs.
package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// NextQuantity aplica la semántica del tipo de movimiento sobre la cantidad previa.
//
//	in:         new = previous + quantity
//	out:        new = previous - quantity (ErrInsufficientStock si queda negativo)
//	adjustment: new = quantity (valor absoluto objetivo, no delta)
//
// quantity es una magnitud sin signo; una magnitud negativa es entrada inválida.
func NextQuantity(previous, quantity int, movementType string) (int, error) {
	if quantity < 0 {
		return 0, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.MovementTypeIn:
		return previous + quantity, nil
	case entity.MovementTypeOut:
		next := previous - quantity
		if next < 0 {
			return 0, domain.ErrInsufficientStock
		}
		return next, nil
	case entity.MovementTypeAdjustment:
		return quantity, nil
	default:
		return 0, domain.ErrInvalidMovementType
	}
}

// skuPrefixLen longitud del prefijo de categoría en el SKU.
const skuPrefixLen = 3

// SKUPrefix deriva el prefijo del SKU: primeras 3 runas de la categoría en mayúsculas.
// Categorías más cortas se rellenan con 'X' (ej. "ac" -> "ACX").
func SKUPrefix(category string) string {
	runes := []rune(strings.ToUpper(strings.TrimSpace(category)))
	if len(runes) > skuPrefixLen {
		runes = runes[:skuPrefixLen]
	}
	for len(runes) < skuPrefixLen {
		runes = append(runes, 'X')
	}
	return string(runes)
}

// FormatSKU arma el SKU final: PREFIJO-0001.
func FormatSKU(prefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// NextSKUSequence devuelve el consecutivo siguiente dado el SKU más alto existente
// para el prefijo ("" si no hay ninguno). Sufijos no numéricos se ignoran y la
// secuencia reinicia en 1, igual que el comportamiento histórico del backend.
func NextSKUSequence(lastSKU string) int {
	if lastSKU == "" {
		return 1
	}
	idx := strings.LastIndex(lastSKU, "-")
	if idx < 0 || idx == len(lastSKU)-1 {
		return 1
	}
	suffix := lastSKU[idx+1:]
	for _, r := range suffix {
		if !unicode.IsDigit(r) {
			return 1
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 1
	}
	return n + 1
}
