package service

import (
	"context"
	"time"

	"jerosmotos/internal/model"
	"jerosmotos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	ID  uuid.UUID
	Rol string
}

func (a Actor) EsAdmin() bool { return a.Rol == model.RolAdministrador }

// ReciboDispatcher enqueues receipt jobs. *worker.Dispatcher implements it.
type ReciboDispatcher interface {
	EnqueueRecibo(ctx context.Context, payload worker.ReciboJobPayload) error
}

// Reloj supplies the current instant. Services read "today" through it in
// the shop's timezone.
type Reloj func() time.Time

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// encolarRecibo is best effort: the operation is already committed, so a
// queue failure is only logged.
func encolarRecibo(ctx context.Context, d ReciboDispatcher, p worker.ReciboJobPayload) {
	if d == nil {
		return
	}
	if err := d.EnqueueRecibo(ctx, p); err != nil {
		log.Warn().Err(err).Str("folio", p.Folio).Msg("no se pudo encolar el recibo")
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseOptionalUUID(s, campo string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, invalid("%s inválido", campo)
	}
	return &id, nil
}
