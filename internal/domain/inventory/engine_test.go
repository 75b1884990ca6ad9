package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
)

var testDate = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// buildInventory inventario base con quantity/available dadas.
func buildInventory(qty, available int64) *entity.Inventory {
	return &entity.Inventory{
		ID:                "inv-1",
		CompanyID:         "co-1",
		ProductID:         "prod-1",
		Quantity:          decimal.NewFromInt(qty),
		AvailableQuantity: decimal.NewFromInt(available),
	}
}

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// assertQuantities verifica el par (quantity, available) de un inventario.
func assertQuantities(t *testing.T, inv *entity.Inventory, qty, available int64) {
	t.Helper()
	assert.True(t, inv.Quantity.Equal(d(qty)), "quantity: esperado %d, quedó %s", qty, inv.Quantity)
	assert.True(t, inv.AvailableQuantity.Equal(d(available)), "available: esperado %d, quedó %s", available, inv.AvailableQuantity)
}

func TestApply_INITIAL_FijaAmbasCantidades(t *testing.T) {
	blank := buildInventory(0, 0)
	next, tx, err := inventory.Apply(blank, d(25), entity.TxTypeINITIAL, testDate, "")

	require.NoError(t, err)
	assertQuantities(t, next, 25, 25)
	assert.True(t, tx.Quantity.Equal(d(25)))
	assert.Equal(t, entity.TxTypeINITIAL, tx.Type)
}

func TestApply_INITIAL_RechazaNegativo(t *testing.T) {
	_, _, err := inventory.Apply(buildInventory(0, 0), d(-1), entity.TxTypeINITIAL, testDate, "")
	assert.ErrorIs(t, err, domain.ErrQuantityInvalid)
}

func TestApply_ADJUSTMENT_SumaConSigno(t *testing.T) {
	next, tx, err := inventory.Apply(buildInventory(10, 10), d(-3), entity.TxTypeADJUSTMENT, testDate, "merma")

	require.NoError(t, err)
	assertQuantities(t, next, 7, 7)
	assert.True(t, tx.Quantity.Equal(d(-3)), "el kardex registra el delta con signo")
	assert.Equal(t, "merma", tx.Notes)
}

// Escenario D: ADJUSTMENT(-15) sobre (10,10) falla con QuantityInvalid y no
// toca el estado.
func TestApply_ADJUSTMENT_RechazaResultadoNegativo(t *testing.T) {
	inv := buildInventory(10, 10)
	_, _, err := inventory.Apply(inv, d(-15), entity.TxTypeADJUSTMENT, testDate, "")

	assert.ErrorIs(t, err, domain.ErrQuantityInvalid)
	assertQuantities(t, inv, 10, 10)
}

// Escenario A: (10,10) → RESERVATION(4) → (10,6); RESERVATION(7) falla con
// InsufficientInventory y el estado queda en (10,6).
func TestApply_RESERVATION_EscenarioA(t *testing.T) {
	inv := buildInventory(10, 10)

	inv2, tx, err := inventory.Apply(inv, d(4), entity.TxTypeRESERVATION, testDate, "")
	require.NoError(t, err)
	assertQuantities(t, inv2, 10, 6)
	assert.True(t, tx.Quantity.Equal(d(-4)), "la reserva resta disponibilidad")

	_, _, err = inventory.Apply(inv2, d(7), entity.TxTypeRESERVATION, testDate, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
	assertQuantities(t, inv2, 10, 6)
}

// Escenario B: (10,6) → RESERVATION_RELEASE(4) → (10,10). La liberación
// restaura exactamente lo reservado sin tocar la existencia.
func TestApply_RESERVATIONRELEASE_EscenarioB(t *testing.T) {
	inv := buildInventory(10, 6)
	next, tx, err := inventory.Apply(inv, d(4), entity.TxTypeRESERVATIONRELEASE, testDate, "")

	require.NoError(t, err)
	assertQuantities(t, next, 10, 10)
	assert.True(t, tx.Quantity.Equal(d(4)))
}

func TestApply_RESERVATIONRELEASE_NoSuperaExistencia(t *testing.T) {
	// Liberar más de lo reservado rompería available <= quantity.
	_, _, err := inventory.Apply(buildInventory(10, 8), d(5), entity.TxTypeRESERVATIONRELEASE, testDate, "")
	assert.ErrorIs(t, err, domain.ErrQuantityInvalid)
}

// Escenario C: (10,10) → RESERVATION(3) → (10,7) → SALE(3) → (7,7). La venta
// solo baja la existencia; la disponibilidad ya la descontó la reserva.
func TestApply_SALE_EscenarioC(t *testing.T) {
	inv := buildInventory(10, 10)

	reserved, _, err := inventory.Apply(inv, d(3), entity.TxTypeRESERVATION, testDate, "")
	require.NoError(t, err)
	assertQuantities(t, reserved, 10, 7)

	sold, tx, err := inventory.Apply(reserved, d(3), entity.TxTypeSALE, testDate, "")
	require.NoError(t, err)
	assertQuantities(t, sold, 7, 7)
	assert.True(t, sold.AvailableQuantity.Equal(reserved.AvailableQuantity),
		"SALE nunca cambia la disponibilidad")
	assert.True(t, tx.Quantity.Equal(d(-3)))
}

func TestApply_SALE_RechazaExistenciaNegativa(t *testing.T) {
	_, _, err := inventory.Apply(buildInventory(2, 0), d(5), entity.TxTypeSALE, testDate, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestApply_SALE_RequiereReservaPrevia(t *testing.T) {
	// Vender sin reserva dejaría quantity < available.
	_, _, err := inventory.Apply(buildInventory(10, 10), d(3), entity.TxTypeSALE, testDate, "")
	assert.ErrorIs(t, err, domain.ErrQuantityInvalid)
}

func TestApply_DELETION_AuditaLaBaja(t *testing.T) {
	inv := buildInventory(8, 5)
	next, tx, err := inventory.Apply(inv, decimal.Zero, entity.TxTypeDELETION, testDate, "baja masiva")

	require.NoError(t, err)
	assertQuantities(t, next, 0, 0)
	assert.True(t, tx.Quantity.Equal(d(-8)), "el kardex registra la existencia previa negada")
}

func TestApply_TipoDesconocidoRechazado(t *testing.T) {
	_, _, err := inventory.Apply(buildInventory(10, 10), d(1), "TRANSFER", testDate, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_DeltasNegativosRechazados(t *testing.T) {
	for _, txType := range []string{
		entity.TxTypeRESERVATION,
		entity.TxTypeRESERVATIONRELEASE,
		entity.TxTypeSALE,
	} {
		_, _, err := inventory.Apply(buildInventory(10, 10), d(-2), txType, testDate, "")
		assert.ErrorIs(t, err, domain.ErrQuantityInvalid, "tipo %s", txType)
	}
}

// TestApply_EsPura verifica que Apply nunca muta el inventario de entrada:
// devuelve una copia o un error, jamás una mutación parcial.
func TestApply_EsPura(t *testing.T) {
	inv := buildInventory(10, 10)

	next, _, err := inventory.Apply(inv, d(4), entity.TxTypeRESERVATION, testDate, "")
	require.NoError(t, err)

	assertQuantities(t, inv, 10, 10)
	assert.NotSame(t, inv, next)
}

// TestApply_PreservaInvariante recorre transiciones válidas sucesivas y
// verifica 0 <= available <= quantity tras cada una.
func TestApply_PreservaInvariante(t *testing.T) {
	steps := []struct {
		txType string
		delta  int64
	}{
		{entity.TxTypeRESERVATION, 5},
		{entity.TxTypeSALE, 2},
		{entity.TxTypeRESERVATIONRELEASE, 3},
		{entity.TxTypeADJUSTMENT, -4},
		{entity.TxTypeADJUSTMENT, 10},
		{entity.TxTypeRESERVATION, 9},
	}
	inv := buildInventory(10, 10)
	for _, step := range steps {
		next, _, err := inventory.Apply(inv, d(step.delta), step.txType, testDate, "")
		require.NoError(t, err, "%s(%d)", step.txType, step.delta)
		assert.False(t, next.AvailableQuantity.IsNegative(),
			"%s(%d): available negativa", step.txType, step.delta)
		assert.True(t, next.AvailableQuantity.LessThanOrEqual(next.Quantity),
			"%s(%d): available > quantity", step.txType, step.delta)
		inv = next
	}
}

func TestStagedChanges_AddYMergeNoMutan(t *testing.T) {
	base := inventory.StagedChanges{}

	a, err := base.Stage(buildInventory(10, 10), d(2), entity.TxTypeRESERVATION, testDate, "")
	require.NoError(t, err)
	b, err := base.Stage(buildInventory(5, 5), d(1), entity.TxTypeRESERVATION, testDate, "")
	require.NoError(t, err)

	merged := a.Merge(b)

	assert.Equal(t, 0, base.Len(), "la colección original no se toca")
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, merged.Len())
	assert.Len(t, merged.Transactions, 2)
	// Orden preservado: primero a, después b.
	assert.Equal(t, "inv-1", merged.Inventories[0].ID)
}

func TestStagedChanges_StagePropagaErrorSinAnexar(t *testing.T) {
	staged := inventory.StagedChanges{}
	staged, err := staged.Stage(buildInventory(10, 10), d(4), entity.TxTypeRESERVATION, testDate, "")
	require.NoError(t, err)

	same, err := staged.Stage(buildInventory(3, 1), d(2), entity.TxTypeRESERVATION, testDate, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
	assert.Equal(t, 1, same.Len(), "la transición fallida no queda en el lote")
}
