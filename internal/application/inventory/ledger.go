package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// WriteLedger asigna número de referencia e inserta cada entrada de kardex, en
// orden. Debe llamarse con repositorios atados a la transacción que también
// escribe los registros de inventario: la emisión de referencias queda
// serializada por el bloqueo del contador y todo se confirma o revierte junto.
func WriteLedger(ctx context.Context, txnRepo repository.InventoryTransactionRepository, refRepo repository.ReferenceRepository, entries []*entity.InventoryTransaction) error {
	for _, tx := range entries {
		ref, err := refRepo.Next(ctx)
		if err != nil {
			return err
		}
		tx.ReferenceNumber = ref
		if err := txnRepo.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
