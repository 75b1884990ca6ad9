package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo emisor de números de referencia del kardex. La tabla
// transaction_counters tiene una sola fila (id = 1) con la última referencia
// emitida; Next la bloquea con SELECT FOR UPDATE, calcula la siguiente y la
// guarda. Dos transacciones que emiten a la vez se serializan en ese lock, así
// que el leer-incrementar-escribir nunca corre en paralelo.
//
// Debe usarse con un Querier atado a la transacción que inserta las entradas:
// si esa transacción revierte, el contador también, sin huecos.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el emisor. Pasar la tx en curso (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// Next emite la siguiente referencia (única y monótona).
func (r *ReferenceRepo) Next(ctx context.Context) (string, error) {
	var last string
	err := r.q.QueryRow(ctx,
		`SELECT last_reference FROM transaction_counters WHERE id = 1 FOR UPDATE`,
	).Scan(&last)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("lock reference counter: %w", err)
		}
		// Kardex vacío: sembrar el contador con la referencia base. El
		// constraint de PK resuelve la carrera de dos siembras simultáneas.
		base := domaininv.BaseReference()
		if _, err := r.q.Exec(ctx,
			`INSERT INTO transaction_counters (id, last_reference) VALUES (1, $1)`, base,
		); err != nil {
			return "", fmt.Errorf("seed reference counter: %w", err)
		}
		return base, nil
	}

	next, err := domaininv.NextReference(last)
	if err != nil {
		return "", err
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE transaction_counters SET last_reference = $1 WHERE id = 1`, next,
	); err != nil {
		return "", fmt.Errorf("advance reference counter: %w", err)
	}
	return next, nil
}
