package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// Apply es el único punto donde se transiciona la cantidad de un inventario.
// Recibe el registro actual, un delta y el tipo de transacción; devuelve una
// copia con el nuevo estado más la entrada de kardex lista para persistir, o un
// error tipado sin haber tocado nada. Función pura: no hace I/O ni muta inv.
//
// Reglas por tipo:
//   - INITIAL: Quantity = Available = delta (delta >= 0; solo en la creación).
//   - ADJUSTMENT: suma delta (con signo) a ambas cantidades; ErrQuantityInvalid
//     si alguna quedaría negativa.
//   - RESERVATION: resta delta solo de Available; ErrInsufficientInventory si
//     quedaría negativa. Quantity no cambia (las unidades siguen en bodega).
//   - RESERVATION_RELEASE: suma delta solo a Available; ErrQuantityInvalid si
//     superaría Quantity (nunca puede haber más disponible que existencia).
//   - SALE: resta delta solo de Quantity; ErrInsufficientInventory si quedaría
//     negativa, ErrQuantityInvalid si quedaría por debajo de Available (la
//     reserva previa ya debió descontar la disponibilidad).
//   - DELETION: fuerza ambas cantidades a 0 y registra -Quantity previa como
//     delta del kardex (auditoría de la baja). Ignora el delta de entrada.
//
// La entrada devuelta no trae ReferenceNumber: lo asigna el generador dentro de
// la transacción de persistencia, donde la emisión está serializada.
func Apply(inv *entity.Inventory, delta decimal.Decimal, txType string, date time.Time, notes string) (*entity.Inventory, *entity.InventoryTransaction, error) {
	next := inv.Clone()
	ledgerDelta := delta

	switch txType {
	case entity.TxTypeINITIAL:
		if delta.IsNegative() {
			return nil, nil, domain.ErrQuantityInvalid
		}
		next.Quantity = delta
		next.AvailableQuantity = delta

	case entity.TxTypeADJUSTMENT:
		newQty := inv.Quantity.Add(delta)
		newAvailable := inv.AvailableQuantity.Add(delta)
		if newQty.IsNegative() || newAvailable.IsNegative() {
			return nil, nil, domain.ErrQuantityInvalid
		}
		next.Quantity = newQty
		next.AvailableQuantity = newAvailable

	case entity.TxTypeRESERVATION:
		if delta.IsNegative() {
			return nil, nil, domain.ErrQuantityInvalid
		}
		newAvailable := inv.AvailableQuantity.Sub(delta)
		if newAvailable.IsNegative() {
			return nil, nil, domain.ErrInsufficientInventory
		}
		next.AvailableQuantity = newAvailable
		ledgerDelta = delta.Neg()

	case entity.TxTypeRESERVATIONRELEASE:
		if delta.IsNegative() {
			return nil, nil, domain.ErrQuantityInvalid
		}
		newAvailable := inv.AvailableQuantity.Add(delta)
		if newAvailable.GreaterThan(inv.Quantity) {
			return nil, nil, domain.ErrQuantityInvalid
		}
		next.AvailableQuantity = newAvailable

	case entity.TxTypeSALE:
		if delta.IsNegative() {
			return nil, nil, domain.ErrQuantityInvalid
		}
		newQty := inv.Quantity.Sub(delta)
		if newQty.IsNegative() {
			return nil, nil, domain.ErrInsufficientInventory
		}
		if newQty.LessThan(inv.AvailableQuantity) {
			return nil, nil, domain.ErrQuantityInvalid
		}
		next.Quantity = newQty
		ledgerDelta = delta.Neg()

	case entity.TxTypeDELETION:
		ledgerDelta = inv.Quantity.Neg()
		next.Quantity = decimal.Zero
		next.AvailableQuantity = decimal.Zero

	default:
		return nil, nil, domain.ErrInvalidInput
	}

	next.UpdatedAt = date
	tx := &entity.InventoryTransaction{
		CompanyID:   inv.CompanyID,
		InventoryID: inv.ID,
		ProductID:   inv.ProductID,
		Type:        txType,
		Quantity:    ledgerDelta,
		Date:        date,
		Notes:       notes,
		CreatedAt:   date,
	}
	return next, tx, nil
}
