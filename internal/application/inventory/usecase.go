package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// InventoryUseCase fachada pública sobre el motor de transiciones: creación,
// ajustes, borrado masivo, historial y agregados. Toda operación recibe el
// companyID explícito (nada de contexto de tenant global) y las mutaciones van
// en una transacción con bloqueo de fila (SELECT FOR UPDATE) que escribe
// registro y entrada de kardex como unidad atómica.
type InventoryUseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	txnRepo     repository.InventoryTransactionRepository
	now         func() time.Time
}

// NewInventoryUseCase construye el caso de uso. invRepo/txnRepo atados al pool
// se usan solo para lecturas; las escrituras pasan por txRunner.
func NewInventoryUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	txnRepo repository.InventoryTransactionRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		productRepo: productRepo,
		txnRepo:     txnRepo,
		now:         time.Now,
	}
}

// Create abre el inventario de un producto con una transición INITIAL.
// Falla con ErrDuplicate si el producto ya tiene inventario en la empresa y con
// ErrNotFound si el producto no existe en el catálogo.
func (uc *InventoryUseCase) Create(ctx context.Context, companyID, productID string, initialQty decimal.Decimal) (*entity.Inventory, error) {
	if companyID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if existing, err := uc.invRepo.GetByProduct(ctx, companyID, productID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	blank := &entity.Inventory{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ProductID: productID,
		CreatedAt: now,
	}
	created, entry, err := domaininv.Apply(blank, initialQty, entity.TxTypeINITIAL, now, "")
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		refRepo repository.ReferenceRepository,
	) error {
		if err := invRepo.Create(ctx, created); err != nil {
			return err
		}
		return WriteLedger(ctx, txnRepo, refRepo, []*entity.InventoryTransaction{entry})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Adjust aplica una transición sobre un inventario existente y devuelve el
// registro actualizado. Acepta ADJUSTMENT, RESERVATION, RESERVATION_RELEASE y
// SALE; INITIAL y DELETION tienen sus propios flujos (Create / BulkDelete).
// Los errores del motor (ErrInsufficientInventory, ErrQuantityInvalid) se
// propagan sin transformar y dejan el estado intacto.
func (uc *InventoryUseCase) Adjust(ctx context.Context, companyID, inventoryID, txType string, qty decimal.Decimal, notes string) (*entity.Inventory, error) {
	switch txType {
	case entity.TxTypeADJUSTMENT, entity.TxTypeRESERVATION, entity.TxTypeRESERVATIONRELEASE, entity.TxTypeSALE:
	default:
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		refRepo repository.ReferenceRepository,
	) error {
		// Bloquea la fila: las transiciones concurrentes sobre el mismo
		// inventario se serializan aquí.
		inv, err := invRepo.GetForUpdate(ctx, companyID, inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		next, entry, err := domaininv.Apply(inv, qty, txType, uc.now(), notes)
		if err != nil {
			return err
		}
		if err := invRepo.Update(ctx, next); err != nil {
			return err
		}
		if err := WriteLedger(ctx, txnRepo, refRepo, []*entity.InventoryTransaction{entry}); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// BulkDeleteForProducts elimina los inventarios de los productos dados dejando
// antes una transición DELETION por cada uno (las entradas de kardex se
// conservan). Todo el lote se confirma en una sola transacción: ante cualquier
// falla no se borra nada y se responde con ErrBulkDelete. Devuelve el número de
// inventarios eliminados.
func (uc *InventoryUseCase) BulkDeleteForProducts(ctx context.Context, companyID string, productIDs []string) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	deleted := 0
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		refRepo repository.ReferenceRepository,
	) error {
		invs, err := invRepo.ListByProductsForUpdate(ctx, companyID, productIDs)
		if err != nil {
			return err
		}
		now := uc.now()
		staged := domaininv.StagedChanges{}
		for _, inv := range invs {
			staged, err = staged.Stage(inv, decimal.Zero, entity.TxTypeDELETION, now, "baja masiva de productos")
			if err != nil {
				return err
			}
		}
		if err := WriteLedger(ctx, txnRepo, refRepo, staged.Transactions); err != nil {
			return err
		}
		for _, inv := range invs {
			if err := invRepo.Delete(ctx, companyID, inv.ID); err != nil {
				return err
			}
		}
		deleted = len(invs)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrBulkDelete, err)
	}
	return deleted, nil
}

// History historial paginado del kardex de un inventario, ordenado por fecha y
// referencia descendentes. Solo lectura.
func (uc *InventoryUseCase) History(ctx context.Context, companyID, inventoryID string, page dto.PageRequest) (*dto.TransactionPage, error) {
	page.DefaultPage()
	inv, err := uc.invRepo.GetByID(ctx, companyID, inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.txnRepo.ListByInventory(ctx, companyID, inventoryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.txnRepo.CountByInventory(ctx, companyID, inventoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		items = append(items, dto.TransactionDTO{
			ID:              tx.ID,
			Type:            tx.Type,
			Quantity:        tx.Quantity,
			ReferenceNumber: tx.ReferenceNumber,
			Date:            tx.Date,
			Notes:           tx.Notes,
		})
	}
	return &dto.TransactionPage{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Stats agregados de inventario de una empresa: conteo por estado de salud de
// stock (derivado del nivel mínimo de cada producto) y totales. Solo lectura.
func (uc *InventoryUseCase) Stats(ctx context.Context, companyID string) (*dto.InventoryStatsDTO, error) {
	invs, err := uc.invRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	minByProduct := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		minByProduct[p.ID] = p.MinimumStockLevel
	}

	stats := &dto.InventoryStatsDTO{
		TotalQuantity:  decimal.Zero,
		TotalAvailable: decimal.Zero,
	}
	for _, inv := range invs {
		stats.TotalProducts++
		stats.TotalQuantity = stats.TotalQuantity.Add(inv.Quantity)
		stats.TotalAvailable = stats.TotalAvailable.Add(inv.AvailableQuantity)
		switch inv.Status(minByProduct[inv.ProductID]) {
		case entity.StockStatusOutOfStock:
			stats.OutOfStock++
		case entity.StockStatusLowStock:
			stats.LowStock++
		case entity.StockStatusOverstock:
			stats.Overstock++
		default:
			stats.Healthy++
		}
	}
	return stats, nil
}

// GetByProduct devuelve el inventario de un producto (ErrNotFound si no existe).
// Lo usan los flujos de órdenes para resolver el inventario antes de reservar.
func (uc *InventoryUseCase) GetByProduct(ctx context.Context, companyID, productID string) (*entity.Inventory, error) {
	inv, err := uc.invRepo.GetByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
