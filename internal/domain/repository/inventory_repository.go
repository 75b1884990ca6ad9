package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory.
// Toda mutación pasa por GetForUpdate/ListByProductsForUpdate dentro de una
// transacción: el bloqueo de fila (SELECT FOR UPDATE) serializa las
// transiciones sobre un mismo registro.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, companyID, id string) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Inventory, error)
	GetByProduct(ctx context.Context, companyID, productID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Inventory, error)
	// GetByProductForUpdate igual que GetForUpdate pero buscando por producto.
	GetByProductForUpdate(ctx context.Context, companyID, productID string) (*entity.Inventory, error)
	// ListByProductsForUpdate bloquea y devuelve los inventarios de los productos dados.
	ListByProductsForUpdate(ctx context.Context, companyID string, productIDs []string) ([]*entity.Inventory, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Inventory, error)
}
