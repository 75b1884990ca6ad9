package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden respecto a su reserva de inventario.
const (
	OrderStatusRESERVED  = "RESERVED"  // reserva vigente, con fecha límite
	OrderStatusCOMPLETED = "COMPLETED" // reserva cumplida (SALE registrado)
	OrderStatusCANCELLED = "CANCELLED" // terminal; la reserva fue liberada
)

// Order es el agregado de orden visto desde el inventario: solo el estado de
// reserva y sus líneas. El resto del ciclo de vida de la orden vive fuera de
// este módulo.
type Order struct {
	ID                   string
	CompanyID            string
	Status               string
	ReservationExpiresAt *time.Time // solo en RESERVED
	Notes                string
	Items                []OrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItem una línea de la orden: producto y cantidad reservada.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
}
