package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibos: renders the PDF and, when the
// client left an email, mails it through the SMTP circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"

	"jerosmotos/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	infra.Recibo
	ClienteEmail string `json:"cliente_email,omitempty"`
}

// ReciboMailer is the subset of *infra.Mailer the worker needs.
type ReciboMailer interface {
	SendRecibo(to, subject, body, pdfPath string) error
}

// ReciboWorker renders and delivers receipts.
type ReciboWorker struct {
	mailer         ReciboMailer
	cb             *infra.CircuitBreaker
	pdfStoragePath string
}

func NewReciboWorker(mailer ReciboMailer, cb *infra.CircuitBreaker, pdfStoragePath string) *ReciboWorker {
	return &ReciboWorker{mailer: mailer, cb: cb, pdfStoragePath: pdfStoragePath}
}

// Process renders the receipt and mails it if requested. A non-nil error
// means the job should be dead-lettered.
func (w *ReciboWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("recibo_worker: invalid payload: %w", err)
	}

	path, err := infra.GenerateReciboPDF(payload.Recibo, w.pdfStoragePath)
	if err != nil {
		return err
	}
	log.Info().Str("folio", payload.Folio).Str("path", path).Msg("recibo_worker: PDF generated")

	if payload.ClienteEmail == "" || w.mailer == nil {
		return nil
	}

	subject := fmt.Sprintf("Jeros'Motos - %s %s", payload.Titulo, payload.Folio)
	body := fmt.Sprintf("Hola %s,\n\nAdjuntamos el recibo de su operación (%s).\n\nJeros'Motos",
		payload.ClienteNombre, payload.Descripcion)

	send := func() error { return w.mailer.SendRecibo(payload.ClienteEmail, subject, body, path) }
	if w.cb != nil {
		err = w.cb.Execute(send)
	} else {
		err = send()
	}
	if err != nil {
		return fmt.Errorf("recibo_worker: send to %s: %w", payload.ClienteEmail, err)
	}
	log.Info().Str("folio", payload.Folio).Str("to", payload.ClienteEmail).Msg("recibo_worker: receipt mailed")
	return nil
}
