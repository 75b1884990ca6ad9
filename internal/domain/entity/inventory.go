package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de salud de stock, derivados de AvailableQuantity vs el nivel mínimo del producto.
// No se persisten: se calculan al consultar.
const (
	StockStatusOutOfStock = "OUT_OF_STOCK"
	StockStatusLowStock   = "LOW_STOCK"
	StockStatusHealthy    = "HEALTHY"
	StockStatusOverstock  = "OVERSTOCK"
)

// Factor sobre el nivel mínimo a partir del cual el stock se considera excedido.
var overstockFactor = decimal.NewFromInt(4)

// Inventory representa el inventario de un producto para una empresa (tenant).
// Quantity es el total físico en bodega (incluye unidades reservadas);
// AvailableQuantity es lo vendible ahora mismo. Invariante: 0 <= Available <= Quantity.
// Solo el motor de transiciones muta estas cantidades.
type Inventory struct {
	ID                string
	CompanyID         string
	ProductID         string
	Quantity          decimal.Decimal
	AvailableQuantity decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Status clasifica el inventario según la cantidad disponible y el nivel mínimo
// de stock del producto. minimumStockLevel <= 0 desactiva LOW_STOCK y OVERSTOCK.
func (i *Inventory) Status(minimumStockLevel decimal.Decimal) string {
	if !i.AvailableQuantity.IsPositive() {
		return StockStatusOutOfStock
	}
	if minimumStockLevel.IsPositive() {
		if i.AvailableQuantity.LessThanOrEqual(minimumStockLevel) {
			return StockStatusLowStock
		}
		if i.AvailableQuantity.GreaterThanOrEqual(minimumStockLevel.Mul(overstockFactor)) {
			return StockStatusOverstock
		}
	}
	return StockStatusHealthy
}

// Clone devuelve una copia independiente (el motor nunca muta el original).
func (i *Inventory) Clone() *Inventory {
	c := *i
	return &c
}
