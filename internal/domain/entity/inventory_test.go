package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// TestInventoryStatus clasificación derivada según disponibilidad vs nivel
// mínimo del producto (mínimo 5 → overstock desde 20).
func TestInventoryStatus(t *testing.T) {
	cases := []struct {
		name      string
		available int64
		minimum   int64
		want      string
	}{
		{"sin disponibilidad", 0, 5, entity.StockStatusOutOfStock},
		{"bajo el mínimo", 3, 5, entity.StockStatusLowStock},
		{"justo en el mínimo", 5, 5, entity.StockStatusLowStock},
		{"rango sano", 12, 5, entity.StockStatusHealthy},
		{"excedido", 20, 5, entity.StockStatusOverstock},
		{"sin mínimo configurado", 12, 0, entity.StockStatusHealthy},
		{"sin mínimo y sin disponibilidad", 0, 0, entity.StockStatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &entity.Inventory{
				Quantity:          decimal.NewFromInt(tc.available + 10),
				AvailableQuantity: decimal.NewFromInt(tc.available),
			}
			assert.Equal(t, tc.want, inv.Status(decimal.NewFromInt(tc.minimum)))
		})
	}
}

func TestInventoryClone_EsIndependiente(t *testing.T) {
	inv := &entity.Inventory{ID: "inv-1", Quantity: decimal.NewFromInt(10)}
	c := inv.Clone()
	c.Quantity = decimal.NewFromInt(99)

	assert.True(t, inv.Quantity.Equal(decimal.NewFromInt(10)), "mutar la copia no toca el original")
}
