package infra

// pdf.go: receipt generation using go-pdf/fpdf.
// One layout serves every receipt kind (pawn, settlement, sale, recovery):
//   - Business name header and receipt title
//   - Folio and timestamp
//   - Item description and client
//   - Amount lines
//   - Bold total
//
// The output file is saved to storagePath/recibo_{folio}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReciboLinea is one concept/amount row of a receipt.
type ReciboLinea struct {
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
}

// Recibo is everything printed on a receipt.
type Recibo struct {
	Folio            string          `json:"folio"`
	Titulo           string          `json:"titulo"`
	Fecha            time.Time       `json:"fecha"`
	Descripcion      string          `json:"descripcion"`
	ClienteNombre    string          `json:"cliente_nombre,omitempty"`
	ClienteDocumento string          `json:"cliente_documento,omitempty"`
	Lineas           []ReciboLinea   `json:"lineas"`
	TotalEtiqueta    string          `json:"total_etiqueta"`
	Total            decimal.Decimal `json:"total"`
}

// GenerateReciboPDF renders r into storagePath (created if needed) and
// returns the path of the written file.
func GenerateReciboPDF(r Recibo, storagePath string) (string, error) {
	if r.Folio == "" {
		return "", fmt.Errorf("pdf: empty folio")
	}
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("recibo_%s.pdf", r.Folio))

	// Half-letter portrait: fits a printed counter receipt.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 140, Ht: 216},
	})
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, tr("Jeros'Motos"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(r.Titulo), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr("Folio: "+r.Folio), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, r.Fecha.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)

	// ── Item / client ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 5, tr("Bien: "+r.Descripcion), "", "L", false)
	if r.ClienteNombre != "" {
		cliente := r.ClienteNombre
		if r.ClienteDocumento != "" {
			cliente += " (" + r.ClienteDocumento + ")"
		}
		pdf.CellFormat(contentW, 5, tr("Cliente: "+cliente), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Lines ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.65
	col2 := contentW * 0.35
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range r.Lineas {
		pdf.CellFormat(col1, 6, tr(l.Concepto), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "$"+l.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	etiqueta := r.TotalEtiqueta
	if etiqueta == "" {
		etiqueta = "TOTAL"
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 7, tr(etiqueta+":"), "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "$"+r.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, tr("Conserve este recibo como soporte de la operación."), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
