package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StagedChanges acumula el resultado de varias transiciones para un único
// commit atómico: registros de inventario actualizados y sus entradas de
// kardex, uno a uno. Es un value type: Add y Merge devuelven colecciones
// nuevas, nadie muta listas ajenas por referencia.
type StagedChanges struct {
	Inventories  []*entity.Inventory
	Transactions []*entity.InventoryTransaction
}

// Add devuelve una nueva colección con el par (inventario, transacción) anexado.
func (s StagedChanges) Add(inv *entity.Inventory, tx *entity.InventoryTransaction) StagedChanges {
	return StagedChanges{
		Inventories:  append(append([]*entity.Inventory{}, s.Inventories...), inv),
		Transactions: append(append([]*entity.InventoryTransaction{}, s.Transactions...), tx),
	}
}

// Merge combina dos colecciones preservando el orden (s primero, other después).
func (s StagedChanges) Merge(other StagedChanges) StagedChanges {
	return StagedChanges{
		Inventories:  append(append([]*entity.Inventory{}, s.Inventories...), other.Inventories...),
		Transactions: append(append([]*entity.InventoryTransaction{}, s.Transactions...), other.Transactions...),
	}
}

// Len cantidad de transiciones preparadas.
func (s StagedChanges) Len() int {
	return len(s.Inventories)
}

// Stage aplica una transición y la anexa a la colección. Azúcar para los flujos
// que recorren varios inventarios (borrado masivo, liberación de reservas).
func (s StagedChanges) Stage(inv *entity.Inventory, delta decimal.Decimal, txType string, date time.Time, notes string) (StagedChanges, error) {
	next, tx, err := Apply(inv, delta, txType, date, notes)
	if err != nil {
		return s, err
	}
	return s.Add(next, tx), nil
}
