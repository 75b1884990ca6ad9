package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// InventoryTransactionRepository puerto de persistencia del kardex. Solo
// escritura de inserción y lecturas: las entradas nunca se editan ni se borran
// (una corrección es un nuevo ADJUSTMENT), por eso el puerto no ofrece Update
// ni Delete.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	ListByInventory(ctx context.Context, companyID, inventoryID string, limit, offset int) ([]*entity.InventoryTransaction, error)
	CountByInventory(ctx context.Context, companyID, inventoryID string) (int, error)
}

// ReferenceRepository emite números de referencia para el kardex. Next lee el
// último emitido, incrementa y lo guarda; la implementación debe serializar la
// emisión (bloqueo de la fila contador) dentro de la misma transacción que
// inserta las entradas.
type ReferenceRepository interface {
	Next(ctx context.Context) (string, error)
}
