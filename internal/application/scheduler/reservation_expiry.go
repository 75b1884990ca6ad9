package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

// ExpireReservationsJob job periódico que busca órdenes RESERVED con la fecha
// límite vencida, libera la disponibilidad de sus líneas (RESERVATION_RELEASE)
// y cancela la orden. Cada orden se procesa en su propia transacción; una falla
// se registra y no detiene a las demás. El tick es un solo goroutine que hace
// el trabajo en línea, así que nunca hay dos ticks solapados.
type ExpireReservationsJob struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	log       *logger.Logger
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// NewExpireReservationsJob construye el job. batchSize limita las órdenes por
// tick; el resto queda para el siguiente (el filtro por status lo permite).
func NewExpireReservationsJob(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	log *logger.Logger,
	interval time.Duration,
	batchSize int,
) *ExpireReservationsJob {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ExpireReservationsJob{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		log:       log,
		interval:  interval,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Run ejecuta el job a intervalo fijo hasta que el contexto se cancele.
func (j *ExpireReservationsJob) Run(ctx context.Context) {
	j.log.Info().Dur("interval", j.interval).Msg("scheduler de reservas vencidas iniciado")
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("scheduler de reservas vencidas detenido")
			return
		case <-ticker.C:
			j.RunOnce(ctx, j.now())
		}
	}
}

// RunOnce procesa un tick: consulta las reservas vencidas a la fecha dada y
// libera/cancela orden por orden. Devuelve cuántas se procesaron con éxito y
// cuántas fallaron (las fallidas quedan RESERVED y se reintentan en el próximo
// tick; las ya CANCELLED no vuelven a aparecer en la consulta).
func (j *ExpireReservationsJob) RunOnce(ctx context.Context, now time.Time) (processed, failed int) {
	orders, err := j.orderRepo.FindExpiredReservations(ctx, now, j.batchSize)
	if err != nil {
		j.log.Error().Err(err).Msg("consultar reservas vencidas")
		return 0, 0
	}
	if len(orders) == 0 {
		return 0, 0
	}
	for _, order := range orders {
		released, err := j.expireOrder(ctx, order, now)
		if err != nil {
			failed++
			j.log.Warn().Err(err).
				Str("order_id", order.ID).
				Str("company_id", order.CompanyID).
				Msg("liberar reserva vencida")
			continue
		}
		if released {
			processed++
		}
	}
	j.log.Info().Int("processed", processed).Int("failed", failed).Msg("tick de reservas vencidas")
	return processed, failed
}

// expireOrder libera las líneas de una orden y la cancela, todo en una
// transacción: o se confirma completo o la orden queda como estaba.
// Devuelve false cuando la orden ya avanzó de estado y no hubo nada que
// liberar.
func (j *ExpireReservationsJob) expireOrder(ctx context.Context, order *entity.Order, now time.Time) (bool, error) {
	released := false
	err := j.txRunner.RunOrders(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		refRepo repository.ReferenceRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Relee la orden con bloqueo: entre la consulta del tick y esta
		// transacción un flujo de venta pudo completarla o renovar la reserva.
		locked, err := orderRepo.GetForUpdate(ctx, order.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Status != entity.OrderStatusRESERVED ||
			locked.ReservationExpiresAt == nil || !locked.ReservationExpiresAt.Before(now) {
			j.log.Debug().Str("order_id", order.ID).Msg("la orden ya no tiene reserva vencida; se omite")
			return nil
		}

		note := fmt.Sprintf("liberación automática: reserva vencida el %s", now.Format(time.RFC3339))

		// Una orden puede repetir el producto en varias líneas; la liberación
		// se acumula por producto para partir siempre de la fila bloqueada.
		type productRelease struct {
			productID string
			quantity  decimal.Decimal
		}
		var releases []productRelease
		byProduct := make(map[string]int)
		for _, item := range locked.Items {
			if i, ok := byProduct[item.ProductID]; ok {
				releases[i].quantity = releases[i].quantity.Add(item.Quantity)
				continue
			}
			byProduct[item.ProductID] = len(releases)
			releases = append(releases, productRelease{productID: item.ProductID, quantity: item.Quantity})
		}

		staged := domaininv.StagedChanges{}
		for _, rel := range releases {
			// Bloquea la fila del inventario; transiciones concurrentes sobre
			// el mismo producto esperan aquí.
			inv, err := invRepo.GetByProductForUpdate(ctx, locked.CompanyID, rel.productID)
			if err != nil {
				return err
			}
			if inv == nil {
				// El inventario fue dado de baja después de la reserva: no hay
				// disponibilidad que devolver para esta línea.
				continue
			}
			staged, err = staged.Stage(inv, rel.quantity, entity.TxTypeRESERVATIONRELEASE, now, note)
			if err != nil {
				return err
			}
		}
		for _, inv := range staged.Inventories {
			if err := invRepo.Update(ctx, inv); err != nil {
				return err
			}
		}
		if err := appinv.WriteLedger(ctx, txnRepo, refRepo, staged.Transactions); err != nil {
			return err
		}

		locked.Status = entity.OrderStatusCANCELLED
		locked.ReservationExpiresAt = nil
		if locked.Notes != "" {
			locked.Notes += "\n"
		}
		locked.Notes += note
		locked.UpdatedAt = now
		if err := orderRepo.Save(ctx, locked); err != nil {
			return err
		}
		released = true
		return nil
	})
	return released, err
}
